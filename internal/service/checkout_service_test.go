package service

import (
	"net/url"
	"strings"
	"testing"

	"luxury-market/internal/domain"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price int64
		want  string
	}{
		{0, "0 F"},
		{500, "500 F"},
		{15000, "15\u00a0000 F"},
		{1250000, "1\u00a0250\u00a0000 F"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestBuildWithCart(t *testing.T) {
	service := NewCheckoutService("221773249642")

	handoff := service.Build(domain.CheckoutRequest{
		Name:    "Awa Diallo",
		Email:   "awa@example.com",
		Phone:   "+221 77 000 00 00",
		Message: "Livraison à Dakar svp",
		Items: []domain.CartItem{
			{ProductID: "p1", Name: "Chemise bleue", Price: 15000, Quantity: 2, Color: "Bleu", Size: "M"},
			{ProductID: "p2", Name: "Montre acier", Price: 30000, Quantity: 1},
		},
	})

	for _, want := range []string{
		"Bonjour Luxury Market,",
		"Nom : Awa Diallo",
		"Email : awa@example.com",
		"Téléphone : +221 77 000 00 00",
		"Panier :",
		"- Chemise bleue (Bleu, taille M) x2 : 30\u00a0000 F",
		"- Montre acier x1 : 30\u00a0000 F",
		"Total panier : 60\u00a0000 F",
		"Message :",
		"Livraison à Dakar svp",
	} {
		if !strings.Contains(handoff.Message, want) {
			t.Errorf("message missing %q:\n%s", want, handoff.Message)
		}
	}

	if strings.Contains(handoff.Message, "Article :") {
		t.Error("cart checkout should not carry the single-article line")
	}
}

func TestBuildWithoutCartUsesArticle(t *testing.T) {
	service := NewCheckoutService("221773249642")

	handoff := service.Build(domain.CheckoutRequest{
		Name:    "Awa Diallo",
		Article: "Chemise bleue",
		Message: "Est-elle disponible ?",
	})

	for _, want := range []string{
		"Article : Chemise bleue",
		"Email : Non renseigné",
		"Téléphone : Non renseigné",
	} {
		if !strings.Contains(handoff.Message, want) {
			t.Errorf("message missing %q:\n%s", want, handoff.Message)
		}
	}
	if strings.Contains(handoff.Message, "Panier :") {
		t.Error("empty cart should not render a cart section")
	}
}

func TestBuildWithoutCartOrArticle(t *testing.T) {
	service := NewCheckoutService("221773249642")

	handoff := service.Build(domain.CheckoutRequest{
		Name:    "Awa Diallo",
		Message: "Je cherche un cadeau",
	})

	if !strings.Contains(handoff.Message, "Article : Non précisé") {
		t.Errorf("message missing default article line:\n%s", handoff.Message)
	}
}

func TestBuildMergesDuplicateCartLines(t *testing.T) {
	service := NewCheckoutService("221773249642")

	handoff := service.Build(domain.CheckoutRequest{
		Name:    "Awa",
		Message: "Commande",
		Items: []domain.CartItem{
			{ProductID: "p1", Name: "Chemise", Price: 10000, Quantity: 1, Color: "Bleu", Size: "M"},
			{ProductID: "p1", Name: "Chemise", Price: 10000, Quantity: 2, Color: "Bleu", Size: "M"},
			{ProductID: "p1", Name: "Chemise", Price: 10000, Quantity: 1, Color: "Bleu", Size: "L"},
			{ProductID: "p1", Name: "Chemise", Price: 10000, Quantity: 0},
		},
	})

	if !strings.Contains(handoff.Message, "x3") {
		t.Errorf("same product/color/size lines should merge to x3:\n%s", handoff.Message)
	}
	if !strings.Contains(handoff.Message, "taille L) x1") {
		t.Errorf("different size must stay a separate line:\n%s", handoff.Message)
	}
	if !strings.Contains(handoff.Message, "Total panier : 40\u00a0000 F") {
		t.Errorf("zero-quantity lines must not count:\n%s", handoff.Message)
	}
}

func TestBuildURL(t *testing.T) {
	service := NewCheckoutService("221773249642")

	handoff := service.Build(domain.CheckoutRequest{
		Name:    "Awa Diallo",
		Message: "Bonjour à vous",
	})

	if !strings.HasPrefix(handoff.URL, "https://wa.me/221773249642?text=") {
		t.Fatalf("unexpected URL prefix: %s", handoff.URL)
	}
	if strings.Contains(handoff.URL, "+") {
		t.Error("spaces must encode as %20, not +")
	}

	encoded := strings.TrimPrefix(handoff.URL, "https://wa.me/221773249642?text=")
	decoded, err := url.QueryUnescape(encoded)
	if err != nil {
		t.Fatalf("URL text does not decode: %v", err)
	}
	if decoded != handoff.Message {
		t.Errorf("decoded text differs from message:\n%q\n%q", decoded, handoff.Message)
	}
}
