package query

import (
	"FashionDeck/app/api/query/internal/types"
	commontypes "FashionDeck/app/common/types"
)

func toApiOutfits(outfits []commontypes.Outfit) []types.Outfit {
	out := make([]types.Outfit, 0, len(outfits))
	for _, o := range outfits {
		items := make([]types.OutfitItem, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, types.OutfitItem{
				Title:        item.Title,
				Price:        item.Price,
				Image:        item.Image,
				Url:          item.Url,
				AffiliateUrl: item.AffiliateUrl,
				Sizes:        item.Sizes,
				Category:     item.Category,
				Marketplace:  item.Marketplace,
			})
		}
		out = append(out, types.Outfit{
			Aesthetic:  o.Aesthetic,
			TotalPrice: o.TotalPrice,
			Items:      items,
			Score:      o.Score,
		})
	}
	return out
}
