package ledger

import (
	"errors"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/domain"
)

var (
	// ErrAccountNotFound means the account has no persisted state yet.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUndecodable means the message body does not match the contract interface.
	ErrUndecodable = errors.New("message body undecodable")
	// ErrEmptyResponse means the contract call produced no output message.
	ErrEmptyResponse = errors.New("response does not contain messages")
	// ErrValidation means the decoded response does not match the expected shape.
	ErrValidation = errors.New("response validation fault")
)

// SnapshotBatchLimit bounds one batched account state query.
const SnapshotBatchLimit = 50

// ExecError carries the exit code of a failed local contract execution.
type ExecError struct {
	Code    int
	Message string
}

func (e *ExecError) Error() string {
	return e.Message
}

// Exit codes indicating the ledger has not converged yet. Executions
// failing with one of these are retried next cycle without error logging.
const (
	ExecCodeAccountMissing     = 414
	ExecCodeAccountUncommitted = 408
	ExecCodeStaleReplicaState  = 508
)

var benignExecCodes = map[int]struct{}{
	ExecCodeAccountMissing:     {},
	ExecCodeAccountUncommitted: {},
	ExecCodeStaleReplicaState:  {},
}

// IsBenignExecError reports whether err is a transient ledger-consistency
// failure rather than a real fault.
func IsBenignExecError(err error) bool {
	var execErr *ExecError
	if errors.As(err, &execErr) {
		_, ok := benignExecCodes[execErr.Code]
		return ok
	}
	return errors.Is(err, ErrAccountNotFound)
}

// Snapshot is a fetched serialized account state (BOC) against which
// read-only methods run locally.
type Snapshot struct {
	Address domain.Address
	Boc     string
}

type TokenInfo struct {
	Id            domain.TokenId
	PublicKey     string
	Owner         domain.Address
	Manager       domain.Address
	Maximum       *string
}

type ArtInfo struct {
	Hash    string
	Creator domain.Address
}

// TotalInfo is the combined result of the two read-only calls executed
// against one snapshot.
type TotalInfo struct {
	BaseInfo TokenInfo
	ArtInfo  ArtInfo
}

type AuctionInfo struct {
	Id        string
	Creator   domain.Address
	Token     domain.Address
	StartBid  domain.Grams
	StepBid   domain.Grams
	FeeBid    domain.Grams
	StartTime int64
	EndTime   int64
}

type OfferInfo struct {
	Id      string
	Creator domain.Address
	Token   domain.Address
	Price   domain.Grams
	Fee     domain.Grams
	EndTime int64
}

type SeriesInfo struct {
	Id          string
	Limit       string
	Name        string
	Symbol      string
	TotalSupply string
}

// Message is one raw outbound message. Aborted is nil when the destination
// transaction status is not available.
type Message struct {
	Body      string
	CreatedAt int64
	Aborted   *bool
}

// DecodedBody is a message body decoded against a contract interface.
type DecodedBody struct {
	Name  string
	Value map[string]interface{}
}

// Contract selects the interface schema used for decoding and calls.
type Contract string

const (
	ContractArtRoot       Contract = "ArtRoot"
	ContractArtToken      Contract = "ArtToken"
	ContractArt2Root      Contract = "Art2Root"
	ContractArt2Series    Contract = "Art2Series"
	ContractArt2Token     Contract = "Art2Token"
	ContractDirectAuction Contract = "DirectAuction"
	ContractOfferRoot     Contract = "OfferRoot"
	ContractOffer         Contract = "Offer"
)

// Event names emitted by the marketplace contracts.
const (
	EventBid           = "BidEvent"
	EventFinish        = "FinishEvent"
	EventOfferAccepted = "OfferAccepted"
	EventOfferFinished = "OfferFinished"
	EventNewSerie      = "newSerie"
	EventMint          = "mint"
)

// Gateway is the read path to the ledger plus the single state-changing
// call the reconciler issues.
type Gateway interface {
	// TokenAddress derives the address of the id-th token from the root
	// contract's state.
	TokenAddress(c ctx.Ctx, root domain.Address, id uint64) (domain.Address, error)
	// OfferAddress derives the address of the id-th offer contract.
	OfferAddress(c ctx.Ctx, root domain.Address, id uint64) (domain.Address, error)

	// FetchSnapshot returns ErrAccountNotFound while the account has not
	// been deployed.
	FetchSnapshot(c ctx.Ctx, address domain.Address) (*Snapshot, error)
	// FetchSnapshots resolves up to SnapshotBatchLimit addresses in one
	// query. Missing accounts are absent from the result map.
	FetchSnapshots(c ctx.Ctx, addresses []domain.Address) (map[domain.Address]*Snapshot, error)

	GetTokenInfo(c ctx.Ctx, snapshot *Snapshot, typ Contract) (*TokenInfo, error)
	GetArtInfo(c ctx.Ctx, snapshot *Snapshot, typ Contract) (*ArtInfo, error)
	GetAuctionInfo(c ctx.Ctx, address domain.Address) (*AuctionInfo, error)
	GetOfferInfo(c ctx.Ctx, address domain.Address) (*OfferInfo, error)
	GetSeriesInfo(c ctx.Ctx, address domain.Address) (*SeriesInfo, error)

	// FinishAuction submits the state-changing finish call.
	FinishAuction(c ctx.Ctx, address domain.Address) error

	// OutboundMessages returns messages sent from the address with
	// creation time strictly greater than afterTime, ascending, capped
	// at limit.
	OutboundMessages(c ctx.Ctx, address domain.Address, afterTime int64, limit int) ([]*Message, error)
	// DecodeMessageBody returns ErrUndecodable when the body does not
	// parse against the contract interface.
	DecodeMessageBody(c ctx.Ctx, contract Contract, body string) (*DecodedBody, error)
}
