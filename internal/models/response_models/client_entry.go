package response_models

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"carebridge/internal/models/db_models"
)

type EntryKind string

const (
	KindInvite EntryKind = "invite"
	KindLinked EntryKind = "linked"
)

// ClientEntry is one row of a therapist's client list: either an InviteEntry
// or a LinkedEntry. Callers switch on the concrete type or Kind().
type ClientEntry interface {
	Kind() EntryKind
	Ref() ClientRef
	isClientEntry()
}

type InviteEntry struct {
	InviteID  uint
	Email     string
	Name      string
	CreatedAt time.Time
}

type LinkedEntry struct {
	AccountID uint
	Name      string
	Email     string
	Status    db_models.LinkStatus
	LinkedAt  time.Time
}

func (InviteEntry) Kind() EntryKind { return KindInvite }
func (LinkedEntry) Kind() EntryKind { return KindLinked }

func (e InviteEntry) Ref() ClientRef { return ClientRef{Kind: KindInvite, ID: e.InviteID} }
func (e LinkedEntry) Ref() ClientRef { return ClientRef{Kind: KindLinked, ID: e.AccountID} }

func (InviteEntry) isClientEntry() {}
func (LinkedEntry) isClientEntry() {}

func (e InviteEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      EntryKind `json:"kind"`
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Name      string    `json:"name,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}{KindInvite, e.Ref().String(), e.Email, e.Name, e.CreatedAt})
}

func (e LinkedEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind      EntryKind `json:"kind"`
		ID        string    `json:"id"`
		AccountID uint      `json:"account_id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Status    string    `json:"status"`
		LinkedAt  time.Time `json:"linked_at"`
	}{KindLinked, e.Ref().String(), e.AccountID, e.Name, e.Email, string(e.Status), e.LinkedAt})
}

// NewClientEntry converts a link row into its tagged list entry.
func NewClientEntry(l *db_models.Link) ClientEntry {
	if l.ClientAccountID == nil {
		return InviteEntry{InviteID: l.ID, Email: l.Email, Name: l.Name, CreatedAt: l.CreatedAt}
	}
	entry := LinkedEntry{
		AccountID: *l.ClientAccountID,
		Name:      l.Name,
		Email:     l.Email,
		Status:    l.Status,
		LinkedAt:  l.CreatedAt,
	}
	if l.LinkedAt != nil {
		entry.LinkedAt = *l.LinkedAt
	}
	if l.Client != nil {
		entry.Name = l.Client.Name
		entry.Email = l.Client.Email
	}
	return entry
}

const (
	invitePrefix = "invite_"
	clientPrefix = "client_"
)

var ErrBadClientRef = errors.New("client reference must be invite_<id>, client_<id> or a numeric account id")

// ClientRef is the tagged identifier used in /clients/:clientId paths.
// invite_<rowId> names a pending invite; client_<accountId> or a bare
// decimal account id names a linked client.
type ClientRef struct {
	Kind EntryKind
	ID   uint
}

func (r ClientRef) IsInvite() bool { return r.Kind == KindInvite }

func (r ClientRef) String() string {
	if r.Kind == KindInvite {
		return invitePrefix + strconv.FormatUint(uint64(r.ID), 10)
	}
	return strconv.FormatUint(uint64(r.ID), 10)
}

func ParseClientRef(s string) (ClientRef, error) {
	kind := KindLinked
	digits := s
	switch {
	case strings.HasPrefix(s, invitePrefix):
		kind, digits = KindInvite, strings.TrimPrefix(s, invitePrefix)
	case strings.HasPrefix(s, clientPrefix):
		digits = strings.TrimPrefix(s, clientPrefix)
	}

	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return ClientRef{}, ErrBadClientRef
	}
	id, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || id == 0 {
		return ClientRef{}, ErrBadClientRef
	}
	return ClientRef{Kind: kind, ID: uint(id)}, nil
}
