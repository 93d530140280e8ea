package services

import (
	"context"
	"errors"
	"testing"

	"carebridge/internal/models/db_models"
	"carebridge/internal/models/request_models"
	"carebridge/internal/models/response_models"
	"carebridge/internal/testutil"
	"carebridge/pkg/utils"
)

func TestCreateInviteTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	th := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T", "t@example.com")

	entry, err := env.links.CreateLinkOrInvite(ctx, th.ID, "Pending@Example.com", "Pat")
	if err != nil {
		t.Fatalf("first invite failed: %v", err)
	}
	invite, ok := entry.(response_models.InviteEntry)
	if !ok {
		t.Fatalf("Expected InviteEntry, got %T", entry)
	}
	if invite.Email != "pending@example.com" || invite.Name != "Pat" {
		t.Errorf("Unexpected invite %+v", invite)
	}

	_, err = env.links.CreateLinkOrInvite(ctx, th.ID, "pending@example.com", "")
	if !errors.Is(err, utils.ErrInviteExists) {
		t.Errorf("Expected ErrInviteExists, got %v", err)
	}
}

func TestPendingInviteUniqueIndex(t *testing.T) {
	env := newTestEnv(t)
	th := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T", "t@example.com")

	first := &db_models.Link{TherapistID: th.ID, Email: "race@example.com", Status: db_models.LinkInvited}
	if err := env.links.linkRepo.Create(context.Background(), first); err != nil {
		t.Fatal(err)
	}
	second := &db_models.Link{TherapistID: th.ID, Email: "race@example.com", Status: db_models.LinkInvited}
	err := env.links.linkRepo.Create(context.Background(), second)
	if err == nil {
		t.Fatal("Expected the partial unique index to reject a second pending invite")
	}
}

func TestCreateLinkForExistingClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	th := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T", "t@example.com")
	client := testutil.CreateTestAccount(t, env.db, db_models.RoleClient, "Jordan", "jordan@example.com")

	entry, err := env.links.CreateLinkOrInvite(ctx, th.ID, "jordan@example.com", "")
	if err != nil {
		t.Fatalf("link failed: %v", err)
	}
	linked, ok := entry.(response_models.LinkedEntry)
	if !ok {
		t.Fatalf("Expected LinkedEntry, got %T", entry)
	}
	if linked.AccountID != client.ID || linked.Status != db_models.LinkActive || linked.Name != "Jordan" {
		t.Errorf("Unexpected linked entry %+v", linked)
	}

	_, err = env.links.CreateLinkOrInvite(ctx, th.ID, "JORDAN@example.com", "")
	if !errors.Is(err, utils.ErrAlreadyLinked) {
		t.Errorf("Expected ErrAlreadyLinked, got %v", err)
	}
}

func TestCreateLinkRejectsTherapistEmail(t *testing.T) {
	env := newTestEnv(t)
	th := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T", "t@example.com")
	testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "Colleague", "colleague@example.com")

	_, err := env.links.CreateLinkOrInvite(context.Background(), th.ID, "colleague@example.com", "")
	if !errors.Is(err, utils.ErrEmailBelongsToTherapist) {
		t.Errorf("Expected ErrEmailBelongsToTherapist, got %v", err)
	}
}

func TestCreateLinkRejectsInvalidEmail(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.links.CreateLinkOrInvite(context.Background(), 1, "not an email", "")
	if !errors.Is(err, utils.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestAutoLinkOnSignupIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	t1 := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T1", "t1@example.com")
	t2 := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T2", "t2@example.com")
	t3 := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T3", "t3@example.com")
	for _, th := range []*db_models.Account{t1, t2, t3} {
		if _, err := env.links.CreateLinkOrInvite(ctx, th.ID, "later@example.com", ""); err != nil {
			t.Fatal(err)
		}
	}
	client := testutil.CreateTestAccount(t, env.db, db_models.RoleClient, "Later", "later@example.com")

	n, err := env.links.AutoLinkOnSignup(ctx, env.db, client)
	if err != nil || n != 3 {
		t.Fatalf("Expected 3 links, got %d (%v)", n, err)
	}
	claimed, err := env.links.linkRepo.FindByPair(ctx, t1.ID, client.ID)
	if err != nil || claimed == nil || claimed.LinkedAt == nil {
		t.Errorf("Expected the claimed invite to record linked_at, got %+v (%v)", claimed, err)
	}
	n, err = env.links.AutoLinkOnSignup(ctx, env.db, client)
	if err != nil || n != 0 {
		t.Errorf("Expected second run to link nothing, got %d (%v)", n, err)
	}
}

func TestUpdateLinkStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	th := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T", "t@example.com")
	client := testutil.CreateTestAccount(t, env.db, db_models.RoleClient, "C", "c@example.com")
	link := testutil.CreateTestLink(t, env.db, th, client, db_models.LinkActive)

	entry, err := env.links.UpdateLinkStatus(ctx, th.ID, "client_"+itoa(client.ID), "paused")
	if err != nil {
		t.Fatalf("UpdateLinkStatus failed: %v", err)
	}
	paused := entry.(response_models.LinkedEntry)
	if paused.Status != db_models.LinkPaused {
		t.Errorf("Expected paused, got %+v", entry)
	}
	if !paused.LinkedAt.Equal(*link.LinkedAt) {
		t.Errorf("Expected linked_at %v to survive a pause, got %v", *link.LinkedAt, paused.LinkedAt)
	}

	if _, err := env.links.UpdateLinkStatus(ctx, th.ID, "invite_1", "paused"); !errors.Is(err, utils.ErrInvalidOperationOnInvite) {
		t.Errorf("Expected ErrInvalidOperationOnInvite, got %v", err)
	}
	if _, err := env.links.UpdateLinkStatus(ctx, th.ID, itoa(client.ID), "invited"); !errors.Is(err, utils.ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if _, err := env.links.UpdateLinkStatus(ctx, th.ID+100, itoa(client.ID), "active"); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another therapist, got %v", err)
	}
}

func TestRemoveLink(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	th := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T", "t@example.com")
	other := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "O", "o@example.com")
	client := testutil.CreateTestAccount(t, env.db, db_models.RoleClient, "C", "c@example.com")
	testutil.CreateTestLink(t, env.db, th, client, db_models.LinkActive)

	entry, err := env.links.CreateLinkOrInvite(ctx, th.ID, "invitee@example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	inviteRef := entry.Ref().String()

	if err := env.links.RemoveLink(ctx, other.ID, inviteRef); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("Expected another therapist's removal to be ErrNotFound, got %v", err)
	}
	if err := env.links.RemoveLink(ctx, th.ID, inviteRef); err != nil {
		t.Errorf("Expected invite removal to succeed, got %v", err)
	}
	if err := env.links.RemoveLink(ctx, th.ID, inviteRef); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("Expected second removal to be ErrNotFound, got %v", err)
	}
	if err := env.links.RemoveLink(ctx, th.ID, itoa(client.ID)); err != nil {
		t.Errorf("Expected unlink to succeed, got %v", err)
	}
	if err := env.links.RemoveLink(ctx, th.ID, "bogus"); !errors.Is(err, utils.ErrValidation) {
		t.Errorf("Expected validation error for bad ref, got %v", err)
	}
}

func TestListClientsOrdersLinkedFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	th := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T", "t@example.com")
	zed := testutil.CreateTestAccount(t, env.db, db_models.RoleClient, "Zed", "zed@example.com")
	amy := testutil.CreateTestAccount(t, env.db, db_models.RoleClient, "amy", "amy@example.com")

	if _, err := env.links.CreateLinkOrInvite(ctx, th.ID, "first-invite@example.com", ""); err != nil {
		t.Fatal(err)
	}
	testutil.CreateTestLink(t, env.db, th, zed, db_models.LinkActive)
	testutil.CreateTestLink(t, env.db, th, amy, db_models.LinkPaused)

	entries, err := env.links.ListClients(ctx, th.ID)
	if err != nil {
		t.Fatalf("ListClients failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Kind() != response_models.KindLinked || entries[0].(response_models.LinkedEntry).Name != "amy" {
		t.Errorf("Expected amy first, got %+v", entries[0])
	}
	if entries[1].(response_models.LinkedEntry).Name != "Zed" {
		t.Errorf("Expected Zed second, got %+v", entries[1])
	}
	if entries[2].Kind() != response_models.KindInvite {
		t.Errorf("Expected the invite last, got %+v", entries[2])
	}

	others, err := env.links.ListClients(ctx, th.ID+100)
	if err != nil || len(others) != 0 {
		t.Errorf("Expected no entries for another therapist, got %d (%v)", len(others), err)
	}
}

func TestListClientCheckinsRequiresLink(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	th := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "T", "t@example.com")
	stranger := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "S", "s@example.com")
	client := testutil.CreateTestAccount(t, env.db, db_models.RoleClient, "C", "c@example.com")
	testutil.CreateTestLink(t, env.db, th, client, db_models.LinkActive)
	if _, err := env.continuity.RecordCheckin(ctx, client.ID, request_models.CreateCheckinRequest{Mood: 6}); err != nil {
		t.Fatal(err)
	}

	checkins, err := env.links.ListClientCheckins(ctx, th.ID, itoa(client.ID), 0)
	if err != nil || len(checkins) != 1 {
		t.Fatalf("Expected one check-in, got %d (%v)", len(checkins), err)
	}
	if _, err := env.links.ListClientCheckins(ctx, stranger.ID, itoa(client.ID), 0); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for an unlinked therapist, got %v", err)
	}
}

func TestListClientCheckinsScopedToTherapist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "First", "first@example.com")
	second := testutil.CreateTestAccount(t, env.db, db_models.RoleTherapist, "Second", "second@example.com")
	client := testutil.CreateTestAccount(t, env.db, db_models.RoleClient, "C", "c@example.com")
	testutil.CreateTestLink(t, env.db, first, client, db_models.LinkActive)
	testutil.CreateTestLink(t, env.db, second, client, db_models.LinkActive)

	// unattributed rows stay with the client
	testutil.CreateTestCheckin(t, env.db, client.ID, db_models.CheckinDaily, mustTime("2024-05-01T10:00:00Z"))

	s := testutil.CreateTestSession(t, env.db, second.ID, client.ID, mustTime("2024-05-02T10:00:00Z"), db_models.SessionCompleted)
	note := "talked about my sister"
	if _, err := env.continuity.RecordCheckin(ctx, client.ID, request_models.CreateCheckinRequest{
		Type: "post_session", SessionID: &s.ID, Mood: 4, Note: &note,
	}); err != nil {
		t.Fatal(err)
	}

	mine, err := env.links.ListClientCheckins(ctx, first.ID, itoa(client.ID), 0)
	if err != nil {
		t.Fatalf("ListClientCheckins failed: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("Expected no check-ins for the first therapist, got %+v", mine)
	}

	theirs, err := env.links.ListClientCheckins(ctx, second.ID, itoa(client.ID), 0)
	if err != nil {
		t.Fatalf("ListClientCheckins failed: %v", err)
	}
	if len(theirs) != 1 || theirs[0].SessionID == nil || *theirs[0].SessionID != s.ID {
		t.Errorf("Expected the session check-in for the second therapist, got %+v", theirs)
	}
}
