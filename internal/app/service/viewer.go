package service

import (
	"github.com/recipehub/recipehub-backend/internal/app/dto"
	"github.com/recipehub/recipehub-backend/internal/app/repository"
)

// viewerResolver builds the per-request flag sets used by the read views.
// A nil viewer ID yields the zero dto.Viewer, so every flag renders false
// for anonymous callers instead of raising.
type viewerResolver struct {
	favoriteRepo     repository.FavoriteRepository
	cartRepo         repository.ShoppingCartRepository
	subscriptionRepo repository.SubscriptionRepository
}

func idSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (v *viewerResolver) resolve(viewerID *uint) (dto.Viewer, error) {
	if viewerID == nil {
		return dto.Viewer{}, nil
	}

	viewer := dto.Viewer{}

	if v.favoriteRepo != nil {
		ids, err := v.favoriteRepo.FindRecipeIDsByUser(*viewerID)
		if err != nil {
			return dto.Viewer{}, err
		}
		viewer.FavoriteRecipeIDs = idSet(ids)
	}
	if v.cartRepo != nil {
		ids, err := v.cartRepo.FindRecipeIDsByUser(*viewerID)
		if err != nil {
			return dto.Viewer{}, err
		}
		viewer.CartRecipeIDs = idSet(ids)
	}
	if v.subscriptionRepo != nil {
		ids, err := v.subscriptionRepo.FindAuthorIDsByUser(*viewerID)
		if err != nil {
			return dto.Viewer{}, err
		}
		viewer.SubscribedAuthorIDs = idSet(ids)
	}

	return viewer, nil
}
