package issuing

import (
	"context"
	"log"
)

// resolveSpendingControl builds the restriction set for a card request.
//
// Merchant pinning wins over category control: if the merchant id validates
// against the provider registry, the card is restricted to that single
// merchant and any supplied allowed categories are ignored. If the merchant
// is unknown, or the lookup itself fails, the allowed categories apply as a
// fallback; with no categories the card carries no allow-restriction.
// Blocked categories apply regardless of the merchant outcome. The
// per-authorization limit always equals the purchase amount.
func resolveSpendingControl(ctx context.Context, registry MerchantRegistry, req CreateCardRequest) SpendingControl {
	control := SpendingControl{
		BlockedCategories:     req.BlockedCategories,
		PerAuthorizationLimit: req.PurchaseAmount,
	}

	merchantValid := false
	if req.MerchantID != "" && registry != nil {
		ok, err := registry.ValidateMerchant(ctx, req.MerchantID)
		if err != nil {
			// A lookup failure resolves to the category fallback, not an
			// error. Logged so transient registry outages stay visible.
			log.Printf("merchant validation failed for %q, using category fallback: %v", req.MerchantID, err)
		}
		merchantValid = ok && err == nil
	}

	if merchantValid {
		control.AllowedMerchants = []string{req.MerchantID}
	} else if len(req.AllowedCategories) > 0 {
		control.AllowedCategories = req.AllowedCategories
	}

	return control
}

// normalizeExpiration applies the default expiry window to non-positive
// values.
func normalizeExpiration(seconds int) int {
	if seconds <= 0 {
		return DefaultExpirationSeconds
	}
	return seconds
}
