package usecase

import (
	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/kmutex"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/collection"
)

type collectionUsecase struct {
	repo collection.Repo
	km   *kmutex.Kmutex
}

func NewCollectionUsecase(repo collection.Repo) collection.Usecase {
	return &collectionUsecase{
		repo: repo,
		km:   kmutex.New(),
	}
}

// Add records the collection at most once per address. A root replaying the
// newSerie announcement lands here again; only the supply counter moves.
func (u *collectionUsecase) Add(c ctx.Ctx, _collection *collection.Collection) (domain.AddResult, error) {
	_collection.Address = _collection.Address.ToLower()

	u.km.Lock("saving_collection_" + string(_collection.Address))
	defer u.km.Unlock("saving_collection_" + string(_collection.Address))

	existing, err := u.repo.FindOne(c, _collection.Address)
	if err == nil {
		if existing.TotalSupply != _collection.TotalSupply {
			if err := u.repo.Patch(c, _collection.Address, collection.PatchableCollection{
				TotalSupply: &_collection.TotalSupply,
			}); err != nil {
				return "", err
			}
		}
		return domain.AddResultAlreadyExists, nil
	} else if err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"err":     err,
			"address": _collection.Address,
		}).Error("repo.FindOne failed")
		return "", err
	}

	if err := u.repo.Create(c, _collection); err != nil {
		return "", err
	}
	return domain.AddResultSuccess, nil
}

func (u *collectionUsecase) GetAll(c ctx.Ctx) ([]*collection.Collection, error) {
	return u.repo.FindAll(c, collection.WithSort("seriesId", domain.SortDirAsc))
}

func (u *collectionUsecase) GetByAddress(c ctx.Ctx, address domain.Address) (*collection.Collection, error) {
	return u.repo.FindOne(c, address.ToLower())
}
