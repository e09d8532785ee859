package marketplace

import (
	"strings"
	"testing"
)

func TestAmazonAffiliateLink(t *testing.T) {
	t.Parallel()

	a := NewAmazon(AmazonConf{
		AffiliateTag: "fdeck-21",
		AccessKey:    "ak",
		SecretKey:    "sk",
	})

	got := a.AffiliateLink("https://www.amazon.in/dp/B0TEST123", "B0TEST123")
	if got != "https://www.amazon.in/dp/B0TEST123?tag=fdeck-21" {
		t.Fatalf("AffiliateLink = %q", got)
	}

	// existing query params survive, tag is added exactly once
	got = a.AffiliateLink("https://www.amazon.in/dp/B0TEST123?ref=sr_1_1", "B0TEST123")
	if !strings.Contains(got, "ref=sr_1_1") || strings.Count(got, "tag=fdeck-21") != 1 {
		t.Fatalf("AffiliateLink with existing params = %q", got)
	}
}

func TestAmazonAffiliateLinkUnconfigured(t *testing.T) {
	t.Parallel()

	a := NewAmazon(AmazonConf{})
	raw := "https://www.amazon.in/dp/B0TEST123"
	if got := a.AffiliateLink(raw, "B0TEST123"); got != raw {
		t.Fatalf("unconfigured AffiliateLink = %q, want URL unchanged", got)
	}
}

func TestFlipkartAffiliateLink(t *testing.T) {
	t.Parallel()

	f := NewFlipkart(FlipkartConf{
		AffiliateId:    "fdeckaff",
		AffiliateToken: "tok",
	})

	got := f.AffiliateLink("https://www.flipkart.com/p/itm123", "itm123")
	if got != "https://www.flipkart.com/p/itm123?affid=fdeckaff" {
		t.Fatalf("AffiliateLink = %q", got)
	}
}

func TestAdapterAvailability(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		adapter Adapter
		want    bool
	}{
		{"amazon full creds", NewAmazon(AmazonConf{AffiliateTag: "t", AccessKey: "a", SecretKey: "s"}), true},
		{"amazon missing secret", NewAmazon(AmazonConf{AffiliateTag: "t", AccessKey: "a"}), false},
		{"amazon empty", NewAmazon(AmazonConf{}), false},
		{"flipkart full creds", NewFlipkart(FlipkartConf{AffiliateId: "i", AffiliateToken: "t"}), true},
		{"flipkart missing token", NewFlipkart(FlipkartConf{AffiliateId: "i"}), false},
	}
	for _, tc := range cases {
		if got := tc.adapter.IsAvailable(); got != tc.want {
			t.Fatalf("%s: IsAvailable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
