package scraper

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/jkowalczyk/price-tracker/internal/platform/models"
	"github.com/samber/lo"
	"golang.org/x/net/html"
)

// currencySymbols recognized in price text, mapped to themselves; the first
// one found becomes the snapshot currency.
var currencySymbols = []string{"$", "€", "£", "₹", "¥"}

// extractProduct pulls product fields out of a product page. Fields without
// a matching element stay nil; the normalizer owns all defaulting.
func extractProduct(page []byte, url string) *models.RawSnapshot {
	raw := &models.RawSnapshot{URL: url}

	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return raw
	}

	if title := text(findByID(doc, "productTitle")); title != "" {
		raw.Title = lo.ToPtr(title)
	}

	if price := priceText(doc); price != "" {
		raw.Price = lo.ToPtr(price)
		raw.Currency = currencyOf(price)
	}

	if original := originalPriceText(doc); original != "" {
		raw.OriginalPrice = lo.ToPtr(original)
	}

	if image := imageURL(doc); image != "" {
		raw.ImageURL = lo.ToPtr(image)
	}

	if description := text(findByID(doc, "productDescription")); description != "" {
		raw.Description = lo.ToPtr(description)
	}

	if availability := text(findByID(doc, "availability")); availability != "" {
		lowered := strings.ToLower(availability)
		raw.OutOfStock = lo.ToPtr(
			strings.Contains(lowered, "unavailable") || strings.Contains(lowered, "out of stock"),
		)
	}

	if stars, ok := parseStars(text(findByClass(doc, "a-icon-alt"))); ok {
		raw.Stars = lo.ToPtr(stars)
	}

	if reviews, ok := parseLeadingInt(text(findByID(doc, "acrCustomerReviewText"))); ok {
		raw.ReviewsCount = lo.ToPtr(reviews)
	}

	if discount, ok := parseDiscount(text(findByClass(doc, "savingsPercentage"))); ok {
		raw.DiscountRate = lo.ToPtr(discount)
	}

	return raw
}

// priceText returns the first price-bearing element's text, checking the
// selectors the product pages are known to use.
func priceText(doc *html.Node) string {
	if block := findByClass(doc, "a-price"); block != nil {
		if offscreen := findByClass(block, "a-offscreen"); offscreen != nil {
			if price := text(offscreen); price != "" {
				return price
			}
		}
	}

	for _, id := range []string{"priceblock_ourprice", "priceblock_dealprice"} {
		if price := text(findByID(doc, id)); price != "" {
			return price
		}
	}

	return text(findByClass(doc, "a-price-whole"))
}

// originalPriceText returns the struck-through list price, if present.
func originalPriceText(doc *html.Node) string {
	if block := findByClass(doc, "a-text-price"); block != nil {
		if offscreen := findByClass(block, "a-offscreen"); offscreen != nil {
			return text(offscreen)
		}
	}

	return ""
}

func imageURL(doc *html.Node) string {
	for _, id := range []string{"landingImage", "imgBlkFront"} {
		if img := findByID(doc, id); img != nil {
			if src := attr(img, "data-old-hires"); src != "" {
				return src
			}
			if src := attr(img, "src"); src != "" {
				return src
			}
		}
	}

	return ""
}

func currencyOf(price string) *string {
	for _, symbol := range currencySymbols {
		if strings.Contains(price, symbol) {
			return lo.ToPtr(symbol)
		}
	}

	return nil
}

// parseStars parses rating text like "4.3 out of 5 stars".
func parseStars(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}

	stars, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", "."), 64)
	if err != nil {
		return 0, false
	}

	return stars, true
}

// parseLeadingInt parses counter text like "1,234 ratings".
func parseLeadingInt(text string) (int, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}

	value, err := strconv.Atoi(strings.ReplaceAll(fields[0], ",", ""))
	if err != nil {
		return 0, false
	}

	return value, true
}

// parseDiscount parses badge text like "-45%".
func parseDiscount(text string) (int, bool) {
	cleaned := strings.TrimFunc(text, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if cleaned == "" {
		return 0, false
	}

	discount, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}

	return discount, true
}

func findByID(n *html.Node, id string) *html.Node {
	return find(n, func(node *html.Node) bool {
		return attr(node, "id") == id
	})
}

func findByClass(n *html.Node, class string) *html.Node {
	return find(n, func(node *html.Node) bool {
		for _, candidate := range strings.Fields(attr(node, "class")) {
			if candidate == class {
				return true
			}
		}
		return false
	})
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}

	if n.Type == html.ElementNode && match(n) {
		return n
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := find(child, match); found != nil {
			return found
		}
	}

	return nil
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}

	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

// text returns the node's text content with whitespace collapsed.
func text(n *html.Node) string {
	if n == nil {
		return ""
	}

	var builder strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			builder.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(builder.String()), " ")
}
