package boardservice_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Weesdome/Boardhub/internal/apperr"
	"github.com/Weesdome/Boardhub/internal/boardservice"
	"github.com/Weesdome/Boardhub/internal/models"
	"github.com/Weesdome/Boardhub/internal/ordering"
	"github.com/Weesdome/Boardhub/internal/testutil"
)

var ctx = context.Background()

// seedBoard creates a board with lists A=[a1,a2,a3] and B=[b1].
func seedBoard(t *testing.T, svc *boardservice.Service, owner string) *models.Board {
	t.Helper()
	b, err := svc.CreateBoard(ctx, owner, boardservice.BoardInput{Title: "Sprint"})
	if err != nil {
		t.Fatal(err)
	}
	for _, lt := range []string{"A", "B"} {
		if _, err := svc.CreateList(ctx, owner, b.ID, boardservice.ItemInput{Title: lt}); err != nil {
			t.Fatal(err)
		}
	}
	b, _ = svc.GetBoard(ctx, owner, b.ID)
	for _, c := range []string{"a1", "a2", "a3"} {
		if _, err := svc.CreateCard(ctx, owner, b.ID, b.Lists[0].ID, boardservice.ItemInput{Title: c}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := svc.CreateCard(ctx, owner, b.ID, b.Lists[1].ID, boardservice.ItemInput{Title: "b1"}); err != nil {
		t.Fatal(err)
	}
	b, err = svc.GetBoard(ctx, owner, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func cardTitles(l models.List) []string {
	out := make([]string, len(l.Cards))
	for i, c := range l.Cards {
		out[i] = c.Title
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testutil.TestService(t)

	sess, err := svc.Register(ctx, boardservice.RegisterInput{Email: "  Ada@Example.com ", Name: "Ada", Password: "hunter22"})
	if err != nil {
		t.Fatal(err)
	}
	if sess.Email != "ada@example.com" || sess.UserID == "" {
		t.Errorf("session = %+v", sess)
	}

	_, err = svc.Register(ctx, boardservice.RegisterInput{Email: "ada@example.com", Name: "Again", Password: "hunter22"})
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate register: %v", err)
	}

	got, err := svc.Login(ctx, boardservice.LoginInput{Email: "ADA@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != sess.UserID {
		t.Errorf("login user = %s, want %s", got.UserID, sess.UserID)
	}

	_, errWrong := svc.Login(ctx, boardservice.LoginInput{Email: "ada@example.com", Password: "nope-nope"})
	_, errUnknown := svc.Login(ctx, boardservice.LoginInput{Email: "bob@example.com", Password: "hunter22"})
	if !errors.Is(errWrong, apperr.ErrInvalidCredentials) || !errors.Is(errUnknown, apperr.ErrInvalidCredentials) {
		t.Errorf("errors = %v / %v", errWrong, errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Errorf("wrong password and unknown email must read the same: %q vs %q", errWrong, errUnknown)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := testutil.TestService(t)
	tests := []struct {
		name  string
		in    boardservice.RegisterInput
		field string
	}{
		{"bad email", boardservice.RegisterInput{Email: "nope", Name: "N", Password: "secret1"}, "email"},
		{"short password", boardservice.RegisterInput{Email: "a@b.co", Name: "N", Password: "12345"}, "password"},
		{"missing name", boardservice.RegisterInput{Email: "a@b.co", Password: "secret1"}, "name"},
		{"password over 72 bytes", boardservice.RegisterInput{Email: "a@b.co", Name: "N", Password: strings.Repeat("é", 40)}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			var verr validation.Errors
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want validation.Errors", err)
			}
			if _, ok := verr[tt.field]; !ok {
				t.Errorf("no error for field %q: %v", tt.field, verr)
			}
		})
	}
}

func TestRegister_MultiBytePasswordAtLimit(t *testing.T) {
	svc := testutil.TestService(t)
	pw := strings.Repeat("é", 36)
	if _, err := svc.Register(ctx, boardservice.RegisterInput{Email: "e@b.co", Name: "E", Password: pw}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, boardservice.LoginInput{Email: "e@b.co", Password: pw}); err != nil {
		t.Errorf("login: %v", err)
	}
}

func TestBoards_OwnerScoped(t *testing.T) {
	svc := testutil.TestService(t)
	alice := testutil.Register(t, svc, "alice@example.com")
	bob := testutil.Register(t, svc, "bob@example.com")

	b, err := svc.CreateBoard(ctx, alice.UserID, boardservice.BoardInput{Title: "  Plans  ", Description: "q3"})
	if err != nil {
		t.Fatal(err)
	}
	if b.Title != "Plans" {
		t.Errorf("title not trimmed: %q", b.Title)
	}

	if _, err := svc.GetBoard(ctx, bob.UserID, b.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("bob reads alice's board: %v", err)
	}
	if _, err := svc.UpdateBoard(ctx, bob.UserID, b.ID, boardservice.BoardInput{Title: "x"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("bob updates alice's board: %v", err)
	}
	if err := svc.DeleteBoard(ctx, bob.UserID, b.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("bob deletes alice's board: %v", err)
	}
	if _, err := svc.CreateList(ctx, bob.UserID, b.ID, boardservice.ItemInput{Title: "x"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("bob adds a list: %v", err)
	}

	summaries, err := svc.ListBoards(ctx, bob.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 0 {
		t.Errorf("bob sees %d boards", len(summaries))
	}

	updated, err := svc.UpdateBoard(ctx, alice.UserID, b.ID, boardservice.BoardInput{Title: "Plans v2"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Plans v2" || updated.Description != "" {
		t.Errorf("updated = %+v", updated)
	}

	found, err := svc.SearchBoards(ctx, alice.UserID, "v2", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 {
		t.Errorf("search found %d", len(found))
	}
	if _, err := svc.SearchBoards(ctx, alice.UserID, "  ", 0); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("empty query: %v", err)
	}

	if err := svc.DeleteBoard(ctx, alice.UserID, b.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GetBoard(ctx, alice.UserID, b.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("after delete: %v", err)
	}
}

func TestCreate_AppendsInOrder(t *testing.T) {
	svc := testutil.TestService(t)
	u := testutil.Register(t, svc, "u@example.com")
	b, _ := svc.CreateBoard(ctx, u.UserID, boardservice.BoardInput{Title: "B"})

	l, err := svc.CreateList(ctx, u.UserID, b.ID, boardservice.ItemInput{Title: "L"})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		c, err := svc.CreateCard(ctx, u.UserID, b.ID, l.ID, boardservice.ItemInput{Title: "c"})
		if err != nil {
			t.Fatal(err)
		}
		if c.Order != i {
			t.Errorf("card %d order = %d", i, c.Order)
		}
	}
	got, _ := svc.GetBoard(ctx, u.UserID, b.ID)
	if err := ordering.Verify(got.Lists); err != nil {
		t.Error(err)
	}
}

func TestDelete_Reindexes(t *testing.T) {
	svc := testutil.TestService(t)
	u := testutil.Register(t, svc, "u@example.com")
	b := seedBoard(t, svc, u.UserID)
	a := b.Lists[0]

	got, err := svc.DeleteCard(ctx, u.UserID, b.ID, a.ID, a.Cards[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(cardTitles(got.Lists[0]), []string{"a2", "a3"}) {
		t.Errorf("cards = %v", cardTitles(got.Lists[0]))
	}
	if err := ordering.Verify(got.Lists); err != nil {
		t.Error(err)
	}

	got, err = svc.DeleteList(ctx, u.UserID, b.ID, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Lists) != 1 || got.Lists[0].Title != "B" || got.Lists[0].Order != 0 {
		t.Errorf("lists = %+v", got.Lists)
	}

	if _, err := svc.DeleteList(ctx, u.UserID, b.ID, a.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

func TestRenameAndUpdate(t *testing.T) {
	svc := testutil.TestService(t)
	u := testutil.Register(t, svc, "u@example.com")
	b := seedBoard(t, svc, u.UserID)

	l, err := svc.RenameList(ctx, u.UserID, b.ID, b.Lists[1].ID, boardservice.ItemInput{Title: "Done"})
	if err != nil {
		t.Fatal(err)
	}
	if l.Title != "Done" || l.Order != 1 {
		t.Errorf("list = %+v", l)
	}

	c, err := svc.UpdateCard(ctx, u.UserID, b.ID, b.Lists[0].ID, b.Lists[0].Cards[1].ID,
		boardservice.ItemInput{Title: "a2!", Description: "details"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Title != "a2!" || c.Description != "details" || c.Order != 1 {
		t.Errorf("card = %+v", c)
	}

	_, err = svc.UpdateCard(ctx, u.UserID, b.ID, b.Lists[1].ID, b.Lists[0].Cards[1].ID, boardservice.ItemInput{Title: "x"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("card looked up in the wrong list: %v", err)
	}

	var verr validation.Errors
	if _, err := svc.RenameList(ctx, u.UserID, b.ID, b.Lists[0].ID, boardservice.ItemInput{Title: "  "}); !errors.As(err, &verr) {
		t.Errorf("blank title: %v", err)
	}
}

func TestMove_PreviewMatchesCommit(t *testing.T) {
	svc := testutil.TestService(t)
	u := testutil.Register(t, svc, "u@example.com")
	b := seedBoard(t, svc, u.UserID)
	a1 := b.Lists[0].Cards[0].ID
	b1 := b.Lists[1].Cards[0].ID

	preview, err := svc.Move(ctx, u.UserID, b.ID, boardservice.MoveInput{ActiveID: a1, OverID: b1})
	if err != nil {
		t.Fatal(err)
	}
	if preview.Committed || preview.Move.Kind != ordering.CardToCard {
		t.Fatalf("preview = %+v", preview.Move)
	}
	stored, _ := svc.GetBoard(ctx, u.UserID, b.ID)
	if !equal(cardTitles(stored.Lists[0]), []string{"a1", "a2", "a3"}) {
		t.Errorf("preview changed the stored board: %v", cardTitles(stored.Lists[0]))
	}

	commit, err := svc.Move(ctx, u.UserID, b.ID, boardservice.MoveInput{ActiveID: a1, OverID: b1, Commit: true})
	if err != nil {
		t.Fatal(err)
	}
	if !commit.Committed {
		t.Fatal("not committed")
	}
	for i := range preview.Board.Lists {
		if !equal(cardTitles(preview.Board.Lists[i]), cardTitles(commit.Board.Lists[i])) {
			t.Errorf("list %d: preview %v, commit %v", i,
				cardTitles(preview.Board.Lists[i]), cardTitles(commit.Board.Lists[i]))
		}
	}

	stored, _ = svc.GetBoard(ctx, u.UserID, b.ID)
	if !equal(cardTitles(stored.Lists[0]), []string{"a2", "a3"}) || !equal(cardTitles(stored.Lists[1]), []string{"a1", "b1"}) {
		t.Errorf("stored = %v / %v", cardTitles(stored.Lists[0]), cardTitles(stored.Lists[1]))
	}
	if err := ordering.Verify(stored.Lists); err != nil {
		t.Error(err)
	}
}

func TestMove_Kinds(t *testing.T) {
	svc := testutil.TestService(t)
	u := testutil.Register(t, svc, "u@example.com")
	b := seedBoard(t, svc, u.UserID)
	la, lb := b.Lists[0], b.Lists[1]

	// a3 onto a1: same-list reorder.
	res, err := svc.Move(ctx, u.UserID, b.ID, boardservice.MoveInput{ActiveID: la.Cards[2].ID, OverID: la.Cards[0].ID, Commit: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.Kind != ordering.CardReorder || !equal(cardTitles(res.Board.Lists[0]), []string{"a3", "a1", "a2"}) {
		t.Errorf("reorder: %s %v", res.Move.Kind, cardTitles(res.Board.Lists[0]))
	}

	// b1 onto list A's container.
	res, err = svc.Move(ctx, u.UserID, b.ID, boardservice.MoveInput{ActiveID: lb.Cards[0].ID, OverID: la.ID, Commit: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.Kind != ordering.CardToList || len(res.Board.Lists[1].Cards) != 0 || res.Board.Lists[0].Cards[3].Title != "b1" {
		t.Errorf("to list: %s %+v", res.Move.Kind, res.Board.Lists)
	}

	// B onto A: list reorder.
	res, err = svc.Move(ctx, u.UserID, b.ID, boardservice.MoveInput{ActiveID: lb.ID, OverID: la.ID, Commit: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.Kind != ordering.ListReorder || res.Board.Lists[0].ID != lb.ID || res.Board.Lists[0].Order != 0 {
		t.Errorf("list reorder: %s %+v", res.Move.Kind, res.Board.Lists)
	}

	// Card on itself and unknown ids change nothing.
	for _, in := range []boardservice.MoveInput{
		{ActiveID: la.Cards[0].ID, OverID: la.Cards[0].ID, Commit: true},
		{ActiveID: "ghost", OverID: la.ID, Commit: true},
		{ActiveID: la.ID, OverID: la.Cards[0].ID, Commit: true},
	} {
		before, _ := svc.GetBoard(ctx, u.UserID, b.ID)
		res, err := svc.Move(ctx, u.UserID, b.ID, in)
		if err != nil {
			t.Fatal(err)
		}
		if res.Move.Kind != ordering.NoOp || res.Committed {
			t.Errorf("%+v: got %s committed=%v", in, res.Move.Kind, res.Committed)
		}
		after, _ := svc.GetBoard(ctx, u.UserID, b.ID)
		if !after.UpdatedAt.Equal(before.UpdatedAt) {
			t.Errorf("%+v: board was written", in)
		}
	}
}

func reorderOf(b *models.Board) boardservice.ReorderInput {
	var in boardservice.ReorderInput
	for _, l := range b.Lists {
		rl := boardservice.ReorderList{ID: l.ID}
		for _, c := range l.Cards {
			rl.Cards = append(rl.Cards, boardservice.ReorderCard{ID: c.ID})
		}
		in.Lists = append(in.Lists, rl)
	}
	return in
}

func TestReorder(t *testing.T) {
	svc := testutil.TestService(t)
	u := testutil.Register(t, svc, "u@example.com")
	b := seedBoard(t, svc, u.UserID)

	in := reorderOf(b)
	// Swap the lists and move a2 to the end of B.
	in.Lists[0], in.Lists[1] = in.Lists[1], in.Lists[0]
	a2 := in.Lists[1].Cards[1]
	in.Lists[1].Cards = append(in.Lists[1].Cards[:1], in.Lists[1].Cards[2:]...)
	in.Lists[0].Cards = append(in.Lists[0].Cards, a2)

	got, err := svc.Reorder(ctx, u.UserID, b.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if got.Lists[0].Title != "B" || !equal(cardTitles(got.Lists[0]), []string{"b1", "a2"}) {
		t.Errorf("B = %+v", got.Lists[0])
	}
	if !equal(cardTitles(got.Lists[1]), []string{"a1", "a3"}) {
		t.Errorf("A = %v", cardTitles(got.Lists[1]))
	}
	if err := ordering.Verify(got.Lists); err != nil {
		t.Error(err)
	}
}

func TestReorder_RejectsIdentityChanges(t *testing.T) {
	svc := testutil.TestService(t)
	u := testutil.Register(t, svc, "u@example.com")
	b := seedBoard(t, svc, u.UserID)

	tests := []struct {
		name   string
		mutate func(in *boardservice.ReorderInput)
	}{
		{"unknown list", func(in *boardservice.ReorderInput) { in.Lists[0].ID = "nope" }},
		{"unknown card", func(in *boardservice.ReorderInput) { in.Lists[0].Cards[0].ID = "nope" }},
		{"duplicate list", func(in *boardservice.ReorderInput) { in.Lists[1] = in.Lists[0] }},
		{"duplicate card", func(in *boardservice.ReorderInput) {
			in.Lists[1].Cards = append(in.Lists[1].Cards, in.Lists[0].Cards[0])
		}},
		{"missing list", func(in *boardservice.ReorderInput) { in.Lists = in.Lists[:1] }},
		{"missing card", func(in *boardservice.ReorderInput) { in.Lists[0].Cards = in.Lists[0].Cards[1:] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := reorderOf(b)
			tt.mutate(&in)
			if _, err := svc.Reorder(ctx, u.UserID, b.ID, in); !errors.Is(err, apperr.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}

	stored, _ := svc.GetBoard(ctx, u.UserID, b.ID)
	if !equal(cardTitles(stored.Lists[0]), []string{"a1", "a2", "a3"}) {
		t.Errorf("rejected reorder was written: %v", cardTitles(stored.Lists[0]))
	}
}

func TestImportMarkdown(t *testing.T) {
	svc := testutil.TestService(t)
	u := testutil.Register(t, svc, "u@example.com")

	b, err := svc.ImportMarkdown(ctx, u.UserID, []byte("# Trip\n## Pack\n- Tent\n- Stove\n  Check the gas.\n## Book\n- Ferry\n"))
	if err != nil {
		t.Fatal(err)
	}
	if b.Title != "Trip" || len(b.Lists) != 2 {
		t.Fatalf("board = %+v", b)
	}
	if b.Lists[0].Cards[1].Description != "Check the gas." || b.Lists[1].Order != 1 {
		t.Errorf("lists = %+v", b.Lists)
	}
	if err := ordering.Verify(b.Lists); err != nil {
		t.Error(err)
	}

	if _, err := svc.ImportMarkdown(ctx, u.UserID, []byte("no title here")); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("bad outline: %v", err)
	}
}

func TestArchive_DeleteAndRestore(t *testing.T) {
	svc := testutil.TestService(t, boardservice.WithArchiver(testutil.TestArchiver(t)))
	u := testutil.Register(t, svc, "u@example.com")
	b := seedBoard(t, svc, u.UserID)

	if _, err := svc.RestoreBoard(ctx, u.UserID, b.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("restore before delete: %v", err)
	}
	if err := svc.DeleteBoard(ctx, u.UserID, b.ID); err != nil {
		t.Fatal(err)
	}

	restored, err := svc.RestoreBoard(ctx, u.UserID, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.Title != "Sprint" || !equal(cardTitles(restored.Lists[0]), []string{"a1", "a2", "a3"}) {
		t.Errorf("restored = %+v", restored)
	}
	if _, err := svc.RestoreBoard(ctx, u.UserID, b.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("restore over live board: %v", err)
	}

	other := testutil.Register(t, svc, "other@example.com")
	if _, err := svc.RestoreBoard(ctx, other.UserID, b.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("restore by another user: %v", err)
	}
}

func TestRestore_ArchiveDisabled(t *testing.T) {
	svc := testutil.TestService(t)
	if _, err := svc.RestoreBoard(ctx, "u", "b"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestSessionFor(t *testing.T) {
	svc := testutil.TestService(t)
	u := testutil.Register(t, svc, "cli@example.com")

	got, err := svc.SessionFor(ctx, "CLI@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != u.UserID {
		t.Errorf("user = %s", got.UserID)
	}
	if _, err := svc.SessionFor(ctx, "ghost@example.com"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown email: %v", err)
	}
}
