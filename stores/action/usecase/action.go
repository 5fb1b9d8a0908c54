package usecase

import (
	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/kmutex"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/action"
)

type actionUsecase struct {
	repo action.Repo
	km   *kmutex.Kmutex
}

func NewActionUsecase(repo action.Repo) action.Usecase {
	return &actionUsecase{
		repo: repo,
		km:   kmutex.New(),
	}
}

// Add records the action at most once. Concurrent producers observing the
// same event serialize on the token's section, so only the first insert wins.
func (u *actionUsecase) Add(c ctx.Ctx, _action *action.Action) (domain.AddResult, error) {
	_action.Id = _action.LogicalId()

	section := "saving_action_" + string(_action.Type) + ":" + string(_action.TokenId)
	u.km.Lock(section)
	defer u.km.Unlock(section)

	exists, err := u.exists(c, _action)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  _action.Id,
		}).Error("exists check failed")
		return "", err
	}
	if exists {
		return domain.AddResultAlreadyExists, nil
	}

	if err := u.repo.Create(c, _action); err != nil {
		return "", err
	}
	return domain.AddResultSuccess, nil
}

// exists decides whether the action has already been recorded. Owner and
// hash changes are deduped against the token's latest same-type action
// only: producers replaying the current state must not insert twice, while
// a token genuinely transitioning back to an earlier state records a fresh
// action. Everything else dedupes by id.
func (u *actionUsecase) exists(c ctx.Ctx, _action *action.Action) (bool, error) {
	switch _action.Type {
	case action.TypeChangeOwner, action.TypeSetHash:
		latest, err := u.repo.FindAll(c,
			action.WithTokenId(_action.TokenId),
			action.WithType(_action.Type),
			action.WithSort("time", domain.SortDirDesc),
			action.WithPagination(0, 1),
		)
		if err != nil {
			return false, err
		}
		return len(latest) > 0 && latest[0].SameTransition(_action), nil
	}

	if _, err := u.repo.FindOne(c, _action.Id); err == nil {
		return true, nil
	} else if err != domain.ErrNotFound {
		return false, err
	}
	return false, nil
}

func (u *actionUsecase) GetAll(c ctx.Ctx) ([]*action.Action, error) {
	return u.repo.FindAll(c, action.WithSort("time", domain.SortDirDesc))
}

func (u *actionUsecase) GetByTokenId(c ctx.Ctx, tokenId domain.TokenId) ([]*action.Action, error) {
	return u.repo.FindAll(c,
		action.WithTokenId(tokenId),
		action.WithSort("time", domain.SortDirDesc),
	)
}

func (u *actionUsecase) GetByOwner(c ctx.Ctx, owner domain.Address) ([]*action.Action, error) {
	return u.repo.FindAll(c,
		action.WithOwner(owner),
		action.WithSort("time", domain.SortDirDesc),
	)
}

func (u *actionUsecase) GetByUserPublicKey(c ctx.Ctx, publicKey string) ([]*action.Action, error) {
	return u.repo.FindAll(c,
		action.WithUserPublicKey(publicKey),
		action.WithSort("time", domain.SortDirDesc),
	)
}
