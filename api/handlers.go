package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mezonai/orion/errors"
	"github.com/mezonai/orion/jsonx"
	"github.com/mezonai/orion/logx"
	"github.com/mezonai/orion/service"
	"github.com/mezonai/orion/types"
	"github.com/mezonai/orion/wallet"
)

const maxBodyBytes = 64 << 10

type identityResponse struct {
	Connected       bool   `json:"connected"`
	Address         string `json:"address,omitempty"`
	CanSignMessages bool   `json:"can_sign_messages"`
}

type signRequest struct {
	Message string `json:"message"`
}

type transferRequest struct {
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
	// WaitFor, if set, holds the response until the commitment is reached.
	WaitFor types.Commitment `json:"wait_for,omitempty"`
}

type transferResponse struct {
	*service.TransferResult
	Status *types.SignatureStatus `json:"status,omitempty"`
	// Error is set when the transfer was sent but the wait for wait_for failed.
	Error *errors.WalletError `json:"error,omitempty"`
}

type airdropRequest struct {
	Amount string `json:"amount"`
}

func (s *APIServer) getIdentity(w http.ResponseWriter, r *http.Request) {
	resp := identityResponse{}
	if s.session.Wallet != nil {
		if pub, ok := s.session.Wallet.PublicKey(); ok {
			resp.Connected = true
			resp.Address = pub.String()
			resp.CanSignMessages = wallet.CanSignMessages(s.session.Wallet)
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *APIServer) getHealth(w http.ResponseWriter, r *http.Request) {
	if s.svc.Health == nil {
		s.writeError(w, errors.ErrLedgerUnavailable)
		return
	}
	status := s.svc.Health.Check(r.Context())
	code := http.StatusOK
	if status.Status != service.StatusServing {
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, status)
}

func (s *APIServer) getBalance(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Balance.Balance(r.Context(), s.session, r.URL.Query().Get("address"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *APIServer) signMessage(w http.ResponseWriter, r *http.Request) {
	var req signRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.svc.Signing.SignMessage(r.Context(), s.session, req.Message)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *APIServer) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.WaitFor != "" && req.WaitFor.Rank() == 0 {
		http.Error(w, fmt.Sprintf("unknown commitment %q", req.WaitFor), http.StatusBadRequest)
		return
	}

	res, err := s.svc.Transfer.Transfer(r.Context(), s.session, req.Destination, req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := transferResponse{TransferResult: res}
	if req.WaitFor == "" {
		s.writeJSON(w, http.StatusOK, resp)
		return
	}
	status, err := s.svc.Transfer.AwaitConfirmation(r.Context(), s.session.Ledger, res.Signature, req.WaitFor)
	if err != nil {
		// the signature is still returned so the client can look it up
		resp.Error = asWalletError(err)
		logx.Warn("API", "Transfer ", res.Signature, " not confirmed: ", resp.Error.JSON())
		s.writeJSON(w, errors.HTTPStatus(resp.Error.Code), resp)
		return
	}
	resp.Status = status
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *APIServer) airdrop(w http.ResponseWriter, r *http.Request) {
	var req airdropRequest
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.svc.Airdrop.RequestAirdrop(r.Context(), s.session, req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// streamNotifications forwards bus notifications as server-sent events
// until the client goes away.
func (s *APIServer) streamNotifications(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok || s.bus == nil {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	id, ch := s.bus.Subscribe()
	defer s.bus.Unsubscribe(id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case note, open := <-ch:
			if !open {
				return
			}
			data, err := jsonx.Marshal(note)
			if err != nil {
				logx.Error("API", "Failed to encode notification: ", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", note.Kind, data)
			flusher.Flush()
		}
	}
}

func (s *APIServer) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return false
	}
	if err := jsonx.Unmarshal(body, v); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := jsonx.NewEncoder(w).Encode(data); err != nil {
		logx.Error("API", "Failed to encode JSON response: ", err)
	}
}

func (s *APIServer) writeError(w http.ResponseWriter, err error) {
	we := asWalletError(err)
	s.writeJSON(w, errors.HTTPStatus(we.Code), we)
}

func asWalletError(err error) *errors.WalletError {
	if we, ok := errors.AsWalletError(err); ok {
		return we
	}
	return &errors.WalletError{Code: errors.ErrCodeInternal, Message: errors.ErrMsgInternal, Detail: err.Error()}
}
