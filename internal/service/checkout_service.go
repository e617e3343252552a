package service

import (
	"net/url"
	"strconv"
	"strings"

	"luxury-market/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CheckoutService turns a validated order form into the WhatsApp handoff URL.
// There is no payment flow: the storefront hands the conversation to the
// store's WhatsApp line with a prefilled order message.
type CheckoutService struct {
	whatsappNumber string
}

func NewCheckoutService(whatsappNumber string) *CheckoutService {
	return &CheckoutService{whatsappNumber: whatsappNumber}
}

// Handoff is the checkout response: the composed message and the wa.me link
// carrying it.
type Handoff struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

var frPrinter = message.NewPrinter(language.French)

// FormatPrice renders a price in the storefront's format: fr-FR digit
// grouping followed by the franc suffix.
func FormatPrice(price int64) string {
	return frPrinter.Sprintf("%d", price) + " F"
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// mergeItems collapses duplicate cart lines. Lines are identical only when
// product, color and size all match; quantities add up.
func mergeItems(items []domain.CartItem) []domain.CartItem {
	var out []domain.CartItem
	index := make(map[string]int)
	for _, item := range items {
		if item.Quantity < 1 {
			continue
		}
		key := item.Key()
		if i, ok := index[key]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[key] = len(out)
		out = append(out, item)
	}
	return out
}

// Build composes the order message and the wa.me URL for it.
func (s *CheckoutService) Build(req domain.CheckoutRequest) Handoff {
	lines := []string{
		"Bonjour Luxury Market,",
		"",
		"Je souhaite passer une commande.",
		"",
		"Nom : " + strings.TrimSpace(req.Name),
		"Email : " + orDefault(req.Email, "Non renseigné"),
		"Téléphone : " + orDefault(req.Phone, "Non renseigné"),
	}

	items := mergeItems(req.Items)
	if len(items) > 0 {
		lines = append(lines, "", "Panier :")
		var subtotal int64
		for _, item := range items {
			label := item.Name
			if details := itemDetails(item); details != "" {
				label += " (" + details + ")"
			}
			total := item.Price * int64(item.Quantity)
			subtotal += total
			lines = append(lines, "- "+label+" x"+strconv.Itoa(item.Quantity)+" : "+FormatPrice(total))
		}
		lines = append(lines, "Total panier : "+FormatPrice(subtotal))
	} else {
		lines = append(lines, "Article : "+orDefault(req.Article, "Non précisé"))
	}

	lines = append(lines, "", "Message :", strings.TrimSpace(req.Message))

	msg := strings.Join(lines, "\n")
	return Handoff{
		URL:     "https://wa.me/" + s.whatsappNumber + "?text=" + encodeText(msg),
		Message: msg,
	}
}

// encodeText percent-encodes like encodeURIComponent does: spaces become
// %20, not +.
func encodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

func itemDetails(item domain.CartItem) string {
	var parts []string
	if c := strings.TrimSpace(item.Color); c != "" {
		parts = append(parts, c)
	}
	if sz := strings.TrimSpace(item.Size); sz != "" {
		parts = append(parts, "taille "+sz)
	}
	return strings.Join(parts, ", ")
}
