package blockset

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind is the closed set of client-level failure classes.
type Kind int

const (
	// KindBadRequest: the request itself was flawed (bad base URL,
	// unserializable body, 400/404 from the service).
	KindBadRequest Kind = iota
	// KindPermission: the request was rejected with invalid permission (403).
	KindPermission
	// KindResource: a resource limit was exceeded, typically a rate limit
	// (429). Callers should back off and retry.
	KindResource
	// KindUnavailable: the service is unavailable (500/504). Callers should
	// retry with backoff.
	KindUnavailable
	// KindBadResponse: the response was flawed; data missing or unparseable,
	// or an unexpected status code.
	KindBadResponse
	// KindSubmission: request and response succeeded but the submission
	// itself failed; see the SubmissionKind for the reason.
	KindSubmission
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindPermission:
		return "permission"
	case KindResource:
		return "resource"
	case KindUnavailable:
		return "unavailable"
	case KindBadResponse:
		return "bad response"
	case KindSubmission:
		return "submission"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// SubmissionKind classifies a failed transaction submission, decoded from
// the service's submit_status field on a 422 response.
type SubmissionKind int

const (
	SubmissionUnknown SubmissionKind = iota
	SubmissionInsufficientFee
	SubmissionInsufficientNetworkCostUnit
	SubmissionSignature
	SubmissionTransaction
	SubmissionTransactionExpired
	SubmissionInsufficientBalance
	SubmissionNonceTooLow
	SubmissionNonceInvalid
	SubmissionTransactionDuplicate
	SubmissionAccount
	SubmissionAccess
)

func (k SubmissionKind) String() string {
	switch k {
	case SubmissionUnknown:
		return "unknown"
	case SubmissionInsufficientFee:
		return "insufficient fee"
	case SubmissionInsufficientNetworkCostUnit:
		return "insufficient network cost unit"
	case SubmissionSignature:
		return "signature"
	case SubmissionTransaction:
		return "transaction"
	case SubmissionTransactionExpired:
		return "transaction expired"
	case SubmissionInsufficientBalance:
		return "insufficient balance"
	case SubmissionNonceTooLow:
		return "nonce too low"
	case SubmissionNonceInvalid:
		return "nonce invalid"
	case SubmissionTransactionDuplicate:
		return "transaction duplicate"
	case SubmissionAccount:
		return "account"
	case SubmissionAccess:
		return "access"
	default:
		return fmt.Sprintf("submission(%d)", int(k))
	}
}

// Error is the single failure value every client operation completes with.
// Kind selects the class; Submission is meaningful only for KindSubmission.
// Detail always carries a human-readable message.
type Error struct {
	Kind       Kind
	Submission SubmissionKind
	Detail     string
}

func (e *Error) Error() string {
	if e.Kind == KindSubmission {
		return fmt.Sprintf("blockset: %s (%s): %s", e.Kind, e.Submission, e.Detail)
	}
	return fmt.Sprintf("blockset: %s: %s", e.Kind, e.Detail)
}

func badRequest(detail string) *Error  { return &Error{Kind: KindBadRequest, Detail: detail} }
func badResponse(detail string) *Error { return &Error{Kind: KindBadResponse, Detail: detail} }

// submitStatusKinds is the fixed lookup from the service's submit_status
// strings into SubmissionKind. Unrecognized strings classify as unknown.
var submitStatusKinds = map[string]SubmissionKind{
	"unknown":               SubmissionUnknown,
	"fee_too_low":           SubmissionInsufficientFee,
	"cost_unit_too_low":     SubmissionInsufficientNetworkCostUnit,
	"signature_invalid":     SubmissionSignature,
	"transaction_invalid":   SubmissionTransaction,
	"transaction_expired":   SubmissionTransactionExpired,
	"insufficient_balance":  SubmissionInsufficientBalance,
	"nonce_too_low":         SubmissionNonceTooLow,
	"nonce_already_used":    SubmissionNonceTooLow,
	"nonce_invalid":         SubmissionNonceInvalid,
	"transaction_duplicate": SubmissionTransactionDuplicate,
	"account_invalid":       SubmissionAccount,
	"access_denied":         SubmissionAccess,
}

// responseSuccess returns the status codes that count as success for an
// HTTP method (RFC 7231 create/update/delete variants included).
func responseSuccess(method string) []int {
	switch method {
	case http.MethodGet:
		return []int{200}
	case http.MethodPost:
		return []int{200, 201}
	case http.MethodDelete:
		return []int{200, 202, 204}
	case http.MethodPut:
		return []int{200, 201, 204}
	default:
		return []int{200}
	}
}

// classifyStatus maps a non-success HTTP status and its body into the
// error taxonomy. Only called once the transport has delivered a response.
func classifyStatus(status int, body []byte) *Error {
	switch status {
	case 400, 404:
		return badRequest(statusDetail(status, body))
	case 403:
		return &Error{Kind: KindPermission, Detail: statusDetail(status, body)}
	case 429:
		return &Error{Kind: KindResource, Detail: statusDetail(status, body)}
	case 500, 504:
		return &Error{Kind: KindUnavailable, Detail: statusDetail(status, body)}
	case 422:
		return classifySubmission(body)
	default:
		return badResponse(statusDetail(status, body))
	}
}

// classifySubmission decodes the 422 submission sub-protocol:
// {"submit_status": <string>, "network_message": <string>}.
// A body that is not a JSON object fails closed as a bad response carrying
// the raw text; no submit status is guessed.
func classifySubmission(body []byte) *Error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return badResponse(string(body))
	}

	// TODO: confirm with the service owners that a missing or non-string
	// submit_status on a 422 should really default to "success"; today that
	// classifies an error response as an unknown-submission outcome.
	submitStatus := "success"
	if raw, ok := fields["submit_status"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			submitStatus = s
		}
	}

	detail := ""
	if raw, ok := fields["network_message"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			detail = s
		}
	}

	kind, ok := submitStatusKinds[submitStatus]
	if !ok {
		kind = SubmissionUnknown
	}
	return &Error{Kind: KindSubmission, Submission: kind, Detail: detail}
}

func statusDetail(status int, body []byte) string {
	// Error bodies, when JSON, carry a "message" field worth surfacing.
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return fmt.Sprintf("status %d: %s", status, envelope.Message)
	}
	return fmt.Sprintf("status %d", status)
}
