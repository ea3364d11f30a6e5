package greyrockfetcher

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/FloodCustomApp/greyrock-listings/internal/constants"
)

// LocateScope находит минимального предка якоря, содержащего весь
// человекочитаемый контент одного объявления, не захватывая соседние.
// Стратегии сверху вниз, побеждает первая успешная:
//  1. ближайший предок с известным классом карточки;
//  2. ближайший предок, чей класс содержит подстроку "listing";
//  3. ближайший охватывающий элемент списка;
//  4. ограниченный подъем вверх до первого предка, похожего на карточку
//     (достаточно детей, ссылок и текста).
//
// Если в пределах лимита подъема предок не найден, якорь остается без
// границ: он исключается из набора с предупреждением, это не фатально.
func LocateScope(anchor *goquery.Selection) (*goquery.Selection, bool) {
	// Closest применяется к родителю: ищем именно предка, сам якорь
	// карточкой быть не может.
	ancestors := anchor.Parent()

	if s := ancestors.Closest("." + constants.ListingItemClass); s.Length() > 0 {
		return s, true
	}

	if s := ancestors.Closest("[class*='" + constants.ListingClassFragment + "']"); s.Length() > 0 {
		return s, true
	}

	if s := ancestors.Closest("li"); s.Length() > 0 {
		return s, true
	}

	parent := anchor.Parent()
	for hops := 0; hops < constants.MaxBoundaryHops && parent.Length() > 0; hops++ {
		if looksLikeCard(parent) {
			return parent, true
		}
		parent = parent.Parent()
	}

	return nil, false
}

// looksLikeCard - эвристика "этот предок и есть карточка": не меньше
// трех прямых детей, не меньше двух ссылок в поддереве и заметный объем
// текста.
func looksLikeCard(s *goquery.Selection) bool {
	if s.Children().Length() < constants.MinScopeChildren {
		return false
	}
	if s.Find("a").Length() < constants.MinScopeLinks {
		return false
	}
	return len(normalizeWhitespace(s.Text())) > constants.MinScopeTextLen
}
