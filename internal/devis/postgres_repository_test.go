package devis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func newMockRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewPostgresRepository(mock), mock
}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO devis").
		WithArgs(
			pgxmock.AnyArg(),
			"Jean Dupont",
			"jean@example.com",
			"",
			"",
			"Site Vitrine Essentiel",
			"Je veux un site pour mon salon de coiffure avec prise de rendez-vous.",
			"",
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
			pgxmock.AnyArg(),
		).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	sub, err := repo.Create(context.Background(), validRequest(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID == "" {
		t.Error("expected generated id")
	}
	if !sub.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, sub.CreatedAt)
	}
	if sub.Analysis != nil || sub.Brief != nil {
		t.Error("expected no enrichment on plain create")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_WithEnrichment(t *testing.T) {
	repo, mock := newMockRepo(t)
	enr := testEnrichment()

	mock.ExpectQuery("INSERT INTO devis").
		WithArgs(
			pgxmock.AnyArg(),
			"Jean Dupont",
			"jean@example.com",
			"",
			"",
			"Site Vitrine Essentiel",
			"Je veux un site pour mon salon de coiffure avec prise de rendez-vous.",
			"",
			&enr.Analysis.Summary,
			&enr.Analysis.Priority,
			enr.Analysis.Keywords,
			[]byte(enr.Brief),
		).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))

	sub, err := repo.Create(context.Background(), validRequest(), enr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Analysis == nil || sub.Analysis.Priority != 4 {
		t.Errorf("expected enrichment on submission, got %+v", sub.Analysis)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO devis").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(errors.New("connection refused"))

	if _, err := repo.Create(context.Background(), validRequest(), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM devis").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing-id")
	if !errors.Is(err, ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestPostgresList(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	summary := "Refonte complète du site."
	priority := 3
	rows := pgxmock.NewRows([]string{
		"id", "name", "email", "phone", "company", "project_type", "project_description", "budget",
		"analysis_summary", "analysis_priority", "analysis_keywords", "content_brief", "created_at",
	}).
		AddRow("id-1", "Jean Dupont", "jean@example.com", "", "", "Site Vitrine Essentiel",
			"Je veux un site pour mon salon de coiffure.", "", &summary, &priority,
			[]string{"coiffure", "vitrine"}, []byte(`{"brandProfile":"salon"}`), now).
		AddRow("id-2", "Marie Curie", "marie@example.com", "0612345678", "Labo SARL", "other",
			"Un site pour présenter nos travaux de recherche.", "1 500 € - 3 000 €",
			(*string)(nil), (*int)(nil), []string(nil), []byte(nil), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM devis").
		WithArgs(50, 0).
		WillReturnRows(rows)

	subs, err := repo.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	if subs[0].Analysis == nil || subs[0].Analysis.Priority != 3 {
		t.Errorf("expected analysis on first row, got %+v", subs[0].Analysis)
	}
	if string(subs[0].Brief) != `{"brandProfile":"salon"}` {
		t.Errorf("unexpected brief: %s", subs[0].Brief)
	}
	if subs[1].Analysis != nil || subs[1].Brief != nil {
		t.Error("expected no enrichment on second row")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
