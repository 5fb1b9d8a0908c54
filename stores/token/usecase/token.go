package usecase

import (
	"github.com/viney-shih/goroutines"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/kmutex"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/auction"
	"github.com/tonart/goindexer/domain/offer"
	"github.com/tonart/goindexer/domain/token"
)

type tokenUsecase struct {
	repo      token.Repo
	auctionUC auction.Usecase
	offerUC   offer.Usecase
	km        *kmutex.Kmutex
}

func NewTokenUsecase(repo token.Repo, auctionUC auction.Usecase, offerUC offer.Usecase) token.Usecase {
	return &tokenUsecase{
		repo:      repo,
		auctionUC: auctionUC,
		offerUC:   offerUC,
		km:        kmutex.New(),
	}
}

func (u *tokenUsecase) Add(c ctx.Ctx, _token *token.Token) (domain.AddResult, error) {
	u.km.Lock("saving_token_" + string(_token.TokenId))
	defer u.km.Unlock("saving_token_" + string(_token.TokenId))

	if _, err := u.repo.FindOne(c, _token.TokenId); err == nil {
		return domain.AddResultAlreadyExists, nil
	} else if err != domain.ErrNotFound {
		c.WithFields(log.Fields{
			"err":     err,
			"tokenId": _token.TokenId,
		}).Error("repo.FindOne failed")
		return "", err
	}

	if err := u.repo.Create(c, _token); err != nil {
		return "", err
	}
	return domain.AddResultSuccess, nil
}

func (u *tokenUsecase) GetAll(c ctx.Ctx) ([]*token.TokenWithDetails, error) {
	tokens, err := u.repo.FindAll(c)
	if err != nil {
		return nil, err
	}
	return u.withDetailsAll(c, tokens)
}

func (u *tokenUsecase) GetById(c ctx.Ctx, tokenId domain.TokenId) (*token.TokenWithDetails, error) {
	_token, err := u.repo.FindOne(c, tokenId)
	if err != nil {
		return nil, err
	}
	return u.withDetails(c, _token)
}

func (u *tokenUsecase) GetByAddress(c ctx.Ctx, address domain.Address) (*token.TokenWithDetails, error) {
	_token, err := u.repo.FindOneByAddress(c, address)
	if err != nil {
		return nil, err
	}
	return u.withDetails(c, _token)
}

func (u *tokenUsecase) GetByOwner(c ctx.Ctx, owner domain.Address) ([]*token.TokenWithDetails, error) {
	tokens, err := u.repo.FindAll(c, token.WithOwner(owner))
	if err != nil {
		return nil, err
	}
	return u.withDetailsAll(c, tokens)
}

func (u *tokenUsecase) GetByUserPublicKey(c ctx.Ctx, publicKey string) ([]*token.TokenWithDetails, error) {
	tokens, err := u.repo.FindAll(c, token.WithUserPublicKey(publicKey))
	if err != nil {
		return nil, err
	}
	return u.withDetailsAll(c, tokens)
}

func (u *tokenUsecase) SetOwner(c ctx.Ctx, tokenId domain.TokenId, owner domain.Address) error {
	owner = owner.ToLower()
	return u.repo.Patch(c, tokenId, token.PatchableToken{Owner: &owner})
}

func (u *tokenUsecase) SetHash(c ctx.Ctx, tokenId domain.TokenId, hash string) error {
	return u.repo.Patch(c, tokenId, token.PatchableToken{Hash: &hash})
}

// SetAuction stores the auction if it is new and points the token at it.
func (u *tokenUsecase) SetAuction(c ctx.Ctx, tokenId domain.TokenId, auc *auction.Auction) error {
	if _, err := u.auctionUC.Add(c, auc); err != nil {
		return err
	}
	return u.repo.Patch(c, tokenId, token.PatchableToken{AuctionId: &auc.AuctionId})
}

func (u *tokenUsecase) withDetails(c ctx.Ctx, _token *token.Token) (*token.TokenWithDetails, error) {
	res := &token.TokenWithDetails{Token: *_token}

	if _token.AuctionId != nil {
		auc, err := u.auctionUC.GetByAuctionId(c, *_token.AuctionId)
		if err == nil {
			res.Auction = auc
		} else if err != domain.ErrNotFound {
			return nil, err
		}
	}

	offers, err := u.offerUC.GetByTokenId(c, _token.TokenId, nil)
	if err != nil {
		return nil, err
	}
	res.Offers = offers

	return res, nil
}

func (u *tokenUsecase) withDetailsAll(c ctx.Ctx, tokens []*token.Token) ([]*token.TokenWithDetails, error) {
	res := make([]*token.TokenWithDetails, len(tokens))
	if len(tokens) == 0 {
		return res, nil
	}

	// batch load auction and offer details
	b := goroutines.NewBatch(10, goroutines.WithBatchSize(len(tokens)))
	defer b.Close()
	for i := 0; i < len(tokens); i++ {
		idx := i
		b.Queue(func() (interface{}, error) {
			detailed, err := u.withDetails(c, tokens[idx])
			if err != nil {
				return nil, err
			}
			res[idx] = detailed
			return nil, nil
		})
	}
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			return nil, ret.Error()
		}
	}
	return res, nil
}
