package ton

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/xerrors"

	"github.com/tonart/goindexer/base/ctx"
	"github.com/tonart/goindexer/base/log"
	"github.com/tonart/goindexer/base/metrics"
	"github.com/tonart/goindexer/domain"
	"github.com/tonart/goindexer/domain/ledger"
)

type impl struct {
	cfg     *ClientCfg
	met     metrics.Service
	abiMu   sync.Mutex
	abiById map[ledger.Contract]json.RawMessage
}

func New(cfg *ClientCfg) ledger.Gateway {
	if cfg.Timeout > 0 {
		cfg.HttpClient.Timeout = cfg.Timeout
	}
	return &impl{
		cfg:     cfg,
		met:     metrics.New("ton"),
		abiById: map[ledger.Contract]json.RawMessage{},
	}
}

func (im *impl) TokenAddress(c ctx.Ctx, root domain.Address, id uint64) (domain.Address, error) {
	return im.deriveAddress(c, root, ledger.ContractArtRoot, "getTokenAddress", id)
}

func (im *impl) OfferAddress(c ctx.Ctx, root domain.Address, id uint64) (domain.Address, error) {
	return im.deriveAddress(c, root, ledger.ContractOfferRoot, "getOfferAddress", id)
}

func (im *impl) deriveAddress(c ctx.Ctx, root domain.Address, contract ledger.Contract, function string, id uint64) (domain.Address, error) {
	snapshot, err := im.FetchSnapshot(c, root)
	if err != nil {
		return domain.EmptyAddress, err
	}
	value, err := im.runLocal(c, contract, snapshot, function, map[string]interface{}{
		"id": strconv.FormatUint(id, 10),
	})
	if err != nil {
		return domain.EmptyAddress, err
	}
	addr, err := asString(value, "addr")
	if err != nil {
		return domain.EmptyAddress, err
	}
	return domain.Address(addr).ToLower(), nil
}

func (im *impl) FetchSnapshot(c ctx.Ctx, address domain.Address) (*ledger.Snapshot, error) {
	snapshots, err := im.FetchSnapshots(c, []domain.Address{address})
	if err != nil {
		return nil, err
	}
	snapshot, ok := snapshots[address.ToLower()]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return snapshot, nil
}

const accountsQuery = `query ($addrs: [String!]) {
  accounts(filter: { id: { in: $addrs } }, limit: %d) { id boc }
}`

func (im *impl) FetchSnapshots(c ctx.Ctx, addresses []domain.Address) (map[domain.Address]*ledger.Snapshot, error) {
	if len(addresses) > ledger.SnapshotBatchLimit {
		return nil, xerrors.Errorf("only %d addresses may be resolved at once: %w", ledger.SnapshotBatchLimit, domain.ErrBadParamInput)
	}

	addrs := make([]string, 0, len(addresses))
	for _, address := range addresses {
		addrs = append(addrs, address.ToLowerStr())
	}

	raw, err := im.graphql(c, fmt.Sprintf(accountsQuery, ledger.SnapshotBatchLimit), map[string]interface{}{"addrs": addrs}, "accounts")
	if err != nil {
		return nil, err
	}
	var records []accountRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.WithField("err", err).Error("unmarshal accounts failed")
		return nil, xerrors.Errorf("unmarshal accounts: %w", ledger.ErrValidation)
	}

	snapshots := make(map[domain.Address]*ledger.Snapshot, len(records))
	for _, record := range records {
		if record.Boc == "" {
			continue
		}
		address := domain.Address(record.Id).ToLower()
		snapshots[address] = &ledger.Snapshot{Address: address, Boc: record.Boc}
	}
	return snapshots, nil
}

func (im *impl) GetTokenInfo(c ctx.Ctx, snapshot *ledger.Snapshot, typ ledger.Contract) (*ledger.TokenInfo, error) {
	value, err := im.runLocal(c, typ, snapshot, "getInfo", nil)
	if err != nil {
		return nil, err
	}

	info := &ledger.TokenInfo{}
	if id, err := asString(value, "id"); err != nil {
		return nil, err
	} else {
		info.Id = domain.TokenId(id)
	}
	if publicKey, err := asString(value, "publicKey"); err != nil {
		return nil, err
	} else {
		info.PublicKey = publicKey
	}
	if owner, err := asString(value, "owner"); err != nil {
		return nil, err
	} else {
		info.Owner = domain.Address(owner).ToLower()
	}
	if manager, err := asString(value, "manager"); err != nil {
		return nil, err
	} else {
		info.Manager = domain.Address(manager).ToLower()
	}
	// art2 tokens carry the series cap, art1 tokens do not
	if maximum, ok := value["maximum"].(string); ok {
		info.Maximum = &maximum
	}
	return info, nil
}

func (im *impl) GetArtInfo(c ctx.Ctx, snapshot *ledger.Snapshot, typ ledger.Contract) (*ledger.ArtInfo, error) {
	value, err := im.runLocal(c, typ, snapshot, "getArtInfo", nil)
	if err != nil {
		return nil, err
	}
	hash, err := asString(value, "hash")
	if err != nil {
		return nil, err
	}
	creator, err := asString(value, "creator")
	if err != nil {
		return nil, err
	}
	return &ledger.ArtInfo{Hash: hash, Creator: domain.Address(creator).ToLower()}, nil
}

func (im *impl) GetAuctionInfo(c ctx.Ctx, address domain.Address) (*ledger.AuctionInfo, error) {
	value, err := im.runLocalAt(c, ledger.ContractDirectAuction, address, "getInfo")
	if err != nil {
		return nil, err
	}

	info := &ledger.AuctionInfo{}
	if info.Id, err = asString(value, "id"); err != nil {
		return nil, err
	}
	creator, err := asString(value, "creator")
	if err != nil {
		return nil, err
	}
	info.Creator = domain.Address(creator).ToLower()
	token, err := asString(value, "token")
	if err != nil {
		return nil, err
	}
	info.Token = domain.Address(token).ToLower()
	startBid, err := asString(value, "startBid")
	if err != nil {
		return nil, err
	}
	info.StartBid = domain.Grams(startBid)
	stepBid, err := asString(value, "stepBid")
	if err != nil {
		return nil, err
	}
	info.StepBid = domain.Grams(stepBid)
	feeBid, err := asString(value, "feeBid")
	if err != nil {
		return nil, err
	}
	info.FeeBid = domain.Grams(feeBid)
	// the contract interface publishes the field as "starTime"
	if info.StartTime, err = asInt64(value, "starTime"); err != nil {
		return nil, err
	}
	if info.EndTime, err = asInt64(value, "endTime"); err != nil {
		return nil, err
	}
	return info, nil
}

func (im *impl) GetOfferInfo(c ctx.Ctx, address domain.Address) (*ledger.OfferInfo, error) {
	value, err := im.runLocalAt(c, ledger.ContractOffer, address, "getInfo")
	if err != nil {
		return nil, err
	}

	info := &ledger.OfferInfo{}
	if info.Id, err = asString(value, "id"); err != nil {
		return nil, err
	}
	creator, err := asString(value, "creator")
	if err != nil {
		return nil, err
	}
	info.Creator = domain.Address(creator).ToLower()
	token, err := asString(value, "token")
	if err != nil {
		return nil, err
	}
	info.Token = domain.Address(token).ToLower()
	price, err := asString(value, "price")
	if err != nil {
		return nil, err
	}
	info.Price = domain.Grams(price)
	fee, err := asString(value, "fee")
	if err != nil {
		return nil, err
	}
	info.Fee = domain.Grams(fee)
	if info.EndTime, err = asInt64(value, "endTime"); err != nil {
		return nil, err
	}
	return info, nil
}

func (im *impl) GetSeriesInfo(c ctx.Ctx, address domain.Address) (*ledger.SeriesInfo, error) {
	value, err := im.runLocalAt(c, ledger.ContractArt2Series, address, "getInfo")
	if err != nil {
		return nil, err
	}

	info := &ledger.SeriesInfo{}
	if info.Id, err = asString(value, "id"); err != nil {
		return nil, err
	}
	if info.Limit, err = asString(value, "limit"); err != nil {
		return nil, err
	}
	if info.Name, err = asString(value, "name"); err != nil {
		return nil, err
	}
	if info.Symbol, err = asString(value, "symbol"); err != nil {
		return nil, err
	}
	if info.TotalSupply, err = asString(value, "totalSupply"); err != nil {
		return nil, err
	}
	return info, nil
}

func (im *impl) FinishAuction(c ctx.Ctx, address domain.Address) error {
	abi, err := im.abi(ledger.ContractDirectAuction)
	if err != nil {
		return err
	}
	_, err = im.sdk(c, "process_message", &sdkRequest{
		Abi:          abi,
		Address:      address.ToLowerStr(),
		FunctionName: "finish",
	})
	return err
}

const messagesQuery = `query ($src: String!, $after: Float!, $limit: Int!) {
  messages(
    filter: { src: { eq: $src }, created_at: { gt: $after } }
    orderBy: [{ path: "created_at", direction: ASC }]
    limit: $limit
  ) { body created_at dst_transaction { aborted id } }
}`

func (im *impl) OutboundMessages(c ctx.Ctx, address domain.Address, afterTime int64, limit int) ([]*ledger.Message, error) {
	raw, err := im.graphql(c, messagesQuery, map[string]interface{}{
		"src":   address.ToLowerStr(),
		"after": afterTime,
		"limit": limit,
	}, "messages")
	if err != nil {
		return nil, err
	}

	var records []messageRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.WithField("err", err).Error("unmarshal messages failed")
		return nil, xerrors.Errorf("unmarshal messages: %w", ledger.ErrValidation)
	}

	messages := make([]*ledger.Message, 0, len(records))
	for _, record := range records {
		message := &ledger.Message{Body: record.Body, CreatedAt: record.CreatedAt}
		if record.DstTransaction != nil {
			message.Aborted = record.DstTransaction.Aborted
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (im *impl) DecodeMessageBody(c ctx.Ctx, contract ledger.Contract, body string) (*ledger.DecodedBody, error) {
	abi, err := im.abi(contract)
	if err != nil {
		return nil, err
	}
	raw, err := im.sdk(c, "decode_message_body", &sdkRequest{
		Abi:        abi,
		Body:       body,
		IsInternal: true,
	})
	if err != nil {
		var execErr *ledger.ExecError
		if xerrors.As(err, &execErr) {
			return nil, xerrors.Errorf("%s: %w", execErr.Message, ledger.ErrUndecodable)
		}
		return nil, err
	}
	var result decodedMessageResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, xerrors.Errorf("unmarshal decoded body: %w", ledger.ErrValidation)
	}
	return &ledger.DecodedBody{Name: result.Name, Value: result.Value}, nil
}

// runLocalAt fetches the account state and runs a read-only method on it.
func (im *impl) runLocalAt(c ctx.Ctx, contract ledger.Contract, address domain.Address, function string) (map[string]interface{}, error) {
	snapshot, err := im.FetchSnapshot(c, address)
	if err != nil {
		return nil, err
	}
	return im.runLocal(c, contract, snapshot, function, nil)
}

// runLocal executes a read-only contract method against a fetched snapshot
// and returns the decoded output of its first response message.
func (im *impl) runLocal(c ctx.Ctx, contract ledger.Contract, snapshot *ledger.Snapshot, function string, input map[string]interface{}) (map[string]interface{}, error) {
	defer im.met.BumpTime("run_local.time", "function", function).End()

	abi, err := im.abi(contract)
	if err != nil {
		return nil, err
	}
	encoded, err := im.sdk(c, "encode_message", &sdkRequest{
		Abi:          abi,
		Address:      snapshot.Address.ToLowerStr(),
		FunctionName: function,
		Input:        input,
	})
	if err != nil {
		return nil, err
	}
	var message encodeMessageResult
	if err := json.Unmarshal(encoded, &message); err != nil {
		return nil, xerrors.Errorf("unmarshal encoded message: %w", ledger.ErrValidation)
	}

	ran, err := im.sdk(c, "run_tvm", &sdkRequest{
		Abi:     abi,
		Message: message.Message,
		Account: snapshot.Boc,
	})
	if err != nil {
		return nil, err
	}
	var result runTvmResult
	if err := json.Unmarshal(ran, &result); err != nil {
		return nil, xerrors.Errorf("unmarshal run result: %w", ledger.ErrValidation)
	}
	if len(result.OutMessages) == 0 {
		return nil, ledger.ErrEmptyResponse
	}

	decoded, err := im.sdk(c, "decode_message", &sdkRequest{
		Abi:     abi,
		Message: result.OutMessages[0],
	})
	if err != nil {
		return nil, err
	}
	var out decodedMessageResult
	if err := json.Unmarshal(decoded, &out); err != nil {
		return nil, xerrors.Errorf("unmarshal run output: %w", ledger.ErrValidation)
	}
	if out.Value == nil {
		return nil, xerrors.Errorf("run output for %s is empty: %w", function, ledger.ErrValidation)
	}
	return out.Value, nil
}

func (im *impl) graphql(c ctx.Ctx, query string, variables map[string]interface{}, field string) (json.RawMessage, error) {
	defer im.met.BumpTime("graphql.time", "field", field).End()

	var resp graphqlResponse
	if err := im.post(c, im.cfg.GraphqlUrl, &graphqlRequest{Query: query, Variables: variables}, &resp); err != nil {
		im.met.BumpSum("graphql.err", 1, "field", field)
		return nil, err
	}
	if len(resp.Errors) > 0 {
		im.met.BumpSum("graphql.err", 1, "field", field)
		c.WithFields(log.Fields{"field": field, "msg": resp.Errors[0].Message}).Error("graphql query failed")
		return nil, xerrors.Errorf("graphql: %s", resp.Errors[0].Message)
	}
	raw, ok := resp.Data[field]
	if !ok {
		im.met.BumpSum("graphql.err", 1, "field", field)
		return nil, xerrors.Errorf("graphql response lacks %s: %w", field, ledger.ErrValidation)
	}
	return raw, nil
}

// sdk invokes one bridge method. Execution failures are surfaced as
// *ledger.ExecError so callers can classify the exit code.
func (im *impl) sdk(c ctx.Ctx, method string, req *sdkRequest) (json.RawMessage, error) {
	var resp sdkResponse
	if err := im.post(c, im.cfg.SdkUrl+"/"+method, req, &resp); err != nil {
		im.met.BumpSum("sdk.err", 1, "method", method)
		return nil, err
	}
	if resp.Error != nil {
		return nil, &ledger.ExecError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	return resp.Result, nil
}

func (im *impl) post(c ctx.Ctx, url string, reqBody interface{}, respBody interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(c, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := im.cfg.HttpClient.Do(req)
	if err != nil {
		c.WithFields(log.Fields{"url": url, "err": err}).Error("node request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.WithFields(log.Fields{"url": url, "status": resp.StatusCode}).Error("node request returned non-200")
		return xerrors.Errorf("node returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(respBody)
}

// abi loads and caches one contract interface from disk.
func (im *impl) abi(contract ledger.Contract) (json.RawMessage, error) {
	im.abiMu.Lock()
	defer im.abiMu.Unlock()

	if cached, ok := im.abiById[contract]; ok {
		return cached, nil
	}
	raw, err := ioutil.ReadFile(filepath.Join(im.cfg.AbiDir, string(contract)+".abi.json"))
	if err != nil {
		return nil, xerrors.Errorf("read abi for %s: %w", contract, err)
	}
	im.abiById[contract] = json.RawMessage(raw)
	return im.abiById[contract], nil
}

func asString(value map[string]interface{}, key string) (string, error) {
	s, ok := value[key].(string)
	if !ok {
		return "", xerrors.Errorf("field %s missing or not a string: %w", key, ledger.ErrValidation)
	}
	return s, nil
}

func asInt64(value map[string]interface{}, key string) (int64, error) {
	switch v := value[key].(type) {
	case string:
		n, err := strconv.ParseInt(v, 0, 64)
		if err != nil {
			return 0, xerrors.Errorf("field %s not numeric: %w", key, ledger.ErrValidation)
		}
		return n, nil
	case float64:
		return int64(v), nil
	default:
		return 0, xerrors.Errorf("field %s missing: %w", key, ledger.ErrValidation)
	}
}
