package ton

import (
	"encoding/json"
	"net/http"
	"time"
)

// ClientCfg configures the node endpoints. GraphqlUrl serves the ledger's
// accounts and messages collections; SdkUrl is the SDK bridge executing
// encode/decode and local runs.
type ClientCfg struct {
	HttpClient http.Client
	GraphqlUrl string
	SdkUrl     string
	AbiDir     string
	Timeout    time.Duration
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []graphqlError             `json:"errors,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type accountRecord struct {
	Id  string `json:"id"`
	Boc string `json:"boc"`
}

type dstTransactionRecord struct {
	Aborted *bool `json:"aborted"`
}

type messageRecord struct {
	Body           string                `json:"body"`
	CreatedAt      int64                 `json:"created_at"`
	DstTransaction *dstTransactionRecord `json:"dst_transaction"`
}

type sdkRequest struct {
	Abi          json.RawMessage        `json:"abi,omitempty"`
	Message      string                 `json:"message,omitempty"`
	Account      string                 `json:"account,omitempty"`
	Body         string                 `json:"body,omitempty"`
	IsInternal   bool                   `json:"is_internal,omitempty"`
	Address      string                 `json:"address,omitempty"`
	FunctionName string                 `json:"function_name,omitempty"`
	Input        map[string]interface{} `json:"input,omitempty"`
}

type sdkError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type sdkResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *sdkError       `json:"error"`
}

type encodeMessageResult struct {
	Message string `json:"message"`
}

type runTvmResult struct {
	OutMessages []string `json:"out_messages"`
}

type decodedMessageResult struct {
	Name  string                 `json:"name"`
	Value map[string]interface{} `json:"value"`
}
