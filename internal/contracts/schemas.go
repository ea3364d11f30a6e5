package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

const runSnapshotSchemaName = "schemas/run_snapshot.schema.json"

var runSnapshotSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	file, err := schemasFS.Open(runSnapshotSchemaName)
	if err != nil {
		log.Fatalf("failed to open embedded schema %s: %v", runSnapshotSchemaName, err)
	}
	defer file.Close()

	if err := compiler.AddResource(runSnapshotSchemaName, file); err != nil {
		log.Fatalf("failed to add schema resource %s: %v", runSnapshotSchemaName, err)
	}

	runSnapshotSchema, err = compiler.Compile(runSnapshotSchemaName)
	if err != nil {
		log.Fatalf("failed to compile schema %s: %v", runSnapshotSchemaName, err)
	}
}

// ValidateRunSnapshot принимает сырой JSON снапшота и проверяет его по схеме
func ValidateRunSnapshot(body []byte) error {
	// распарсить JSON в универсальный тип interface{}
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		// Если это невалидный JSON, валидация по схеме невозможна
		return fmt.Errorf("snapshot body is not a valid JSON: %w", err)
	}

	if err := runSnapshotSchema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}

	return nil
}
