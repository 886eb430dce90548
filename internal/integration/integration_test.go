package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"quiz-game-app/internal/app"
	"quiz-game-app/internal/domain"
	"quiz-game-app/internal/infra/postgres"
	pgmigrations "quiz-game-app/internal/infra/postgres/migrations"
	infraredis "quiz-game-app/internal/infra/redis"
)

func TestPlayThroughPostgresAndRedis(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	migrateSchema(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	bank := sampleBank(8)
	if err := postgres.SeedQuestions(ctx, pool, bank); err != nil {
		t.Fatalf("seed: %v", err)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	questions := infraredis.NewQuestionBank(redisClient, postgres.NewQuestionLoader(pool), 5*time.Minute, zerolog.Nop())
	sessions := infraredis.NewSessionStore(redisClient, 5*time.Minute)
	answers := postgres.NewAnswerStore(pool, zerolog.Nop())
	service := app.NewQuizService(sessions, questions, answers, zerolog.Nop(), nil)

	correct := map[domain.QuestionID]int{}
	for _, q := range bank {
		correct[q.ID] = q.CorrectChoice
	}

	play(t, ctx, service, "s-ana", "Ana", func(id domain.QuestionID) int { return correct[id] })
	play(t, ctx, service, "s-ben", "Ben", func(domain.QuestionID) int { return 1 })

	if got := len(answers.ReadAll(ctx)); got != 2*domain.Quota {
		t.Fatalf("expected %d stored answers, got %d", 2*domain.Quota, got)
	}

	scores, err := service.ScoreTable(ctx)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if scores["Ana"] != domain.Quota+1 || scores["Ben"] != 1 {
		t.Fatalf("unexpected scores %v", scores)
	}

	winners, err := service.Winners(ctx)
	if err != nil {
		t.Fatalf("winners: %v", err)
	}
	if len(winners.Winners) != 1 || winners.Winners[0] != "Ana" {
		t.Fatalf("expected Ana to win, got %+v", winners)
	}

	if err := service.ClearAllAnswers(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := answers.ReadAll(ctx); len(got) != 0 {
		t.Fatalf("expected empty store after clear, got %v", got)
	}
}

func play(t *testing.T, ctx context.Context, service *app.QuizService, sessionID, name string, pick func(domain.QuestionID) int) {
	t.Helper()
	service.Open(ctx, sessionID)
	defer service.Leave(ctx, sessionID)

	if _, err := service.SetParticipantName(ctx, sessionID, name); err != nil {
		t.Fatalf("set name %s: %v", name, err)
	}
	var view domain.SessionView
	for i := 0; i < domain.Quota; i++ {
		q, ok, err := service.CurrentQuestion(ctx, sessionID)
		if err != nil || !ok {
			t.Fatalf("%s question %d: ok=%v err=%v", name, i, ok, err)
		}
		view, err = service.SubmitAnswer(ctx, sessionID, pick(q.ID))
		if err != nil {
			t.Fatalf("%s submit %d: %v", name, i, err)
		}
	}
	if view.Status != domain.StatusCompleted {
		t.Fatalf("expected %s completed, got %+v", name, view)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	return fmt.Sprintf("redis://%s:%s", host, port.Port()), func() {
		_ = container.Terminate(ctx)
	}
}

// migrateSchema runs the bun migrations; postgres needs a moment after the
// port opens before it accepts logins, so the first init is retried.
func migrateSchema(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	var err error
	for attempt := 0; attempt < 10; attempt++ {
		if err = migrator.Init(ctx); err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func sampleBank(n int) []domain.Question {
	bank := make([]domain.Question, 0, n)
	for i := 1; i <= n; i++ {
		bank = append(bank, domain.Question{
			ID:            domain.QuestionID(fmt.Sprint(i)),
			Text:          fmt.Sprintf("Pregunta %d", i),
			Choices:       []string{"no", "si", "tal vez"},
			CorrectChoice: 2,
		})
	}
	return bank
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
