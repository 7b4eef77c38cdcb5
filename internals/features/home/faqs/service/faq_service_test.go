package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campushub_backend/internals/databases/inmem"
	"campushub_backend/internals/features/home/faqs/model"
	"campushub_backend/internals/features/home/faqs/repository"
)

type fakeGenerator struct {
	calls     int
	lastBatch []string
	fail      error
}

func (g *fakeGenerator) Generate(ctx context.Context, questions []string) ([]QA, error) {
	g.calls++
	g.lastBatch = questions
	if g.fail != nil {
		return nil, g.fail
	}
	out := make([]QA, 0, len(questions))
	for _, q := range questions {
		out = append(out, QA{Question: q, Answer: "Answer to: " + q})
	}
	return out, nil
}

func newTestService(t *testing.T) (*FaqService, *fakeGenerator) {
	t.Helper()
	store := inmem.Open("")
	gen := &fakeGenerator{}
	return NewFaqService(inmem.NewFaqRepository(store), gen), gen
}

func TestCreateRejectsDuplicateQuestionCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, &model.FaqModel{
		FaqQuestion: "How do I register?",
		FaqAnswer:   "Use the event page.",
	}))

	err := svc.Create(ctx, &model.FaqModel{
		FaqQuestion: "  how do i REGISTER? ",
		FaqAnswer:   "Different answer.",
	})
	assert.ErrorIs(t, err, repository.ErrQuestionExists)
}

func TestUpdateRejectsQuestionCollidingWithAnotherFaq(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := model.FaqModel{
		FaqQuestion: "How do I register?",
		FaqAnswer:   "Use the event page.",
	}
	require.NoError(t, svc.Create(ctx, &first))

	second := model.FaqModel{
		FaqQuestion: "Who can publish events?",
		FaqAnswer:   "Teachers.",
	}
	require.NoError(t, svc.Create(ctx, &second))

	// Editing the question onto another FAQ's text conflicts, case aside.
	second.FaqQuestion = "  how do i REGISTER? "
	err := svc.Update(ctx, &second)
	assert.ErrorIs(t, err, repository.ErrQuestionExists)

	// Keeping its own question (answer edit) is not a collision.
	second.FaqQuestion = "Who can publish events?"
	second.FaqAnswer = "Only teacher accounts."
	require.NoError(t, svc.Update(ctx, &second))
}

func TestBulkGenerateStoresAnswers(t *testing.T) {
	svc, gen := newTestService(t)
	ctx := context.Background()

	result, err := svc.BulkGenerate(ctx, []string{
		"How do I register for an event?",
		"Who can publish events?",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	require.Len(t, result.Created, 2)
	assert.Empty(t, result.Skipped)

	for _, f := range result.Created {
		assert.True(t, f.FaqIsGenerated)
		assert.True(t, strings.HasPrefix(f.FaqAnswer, "Answer to: "))
	}

	_, total, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestBulkGenerateIsIdempotent(t *testing.T) {
	svc, gen := newTestService(t)
	ctx := context.Background()

	batch := []string{"How do I register?", "Can I cancel?"}
	_, err := svc.BulkGenerate(ctx, batch)
	require.NoError(t, err)

	// Same batch again, different casing: nothing new is generated or stored.
	result, err := svc.BulkGenerate(ctx, []string{"HOW DO I REGISTER?", "can i cancel?"})
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Len(t, result.Skipped, 2)
	assert.Equal(t, 1, gen.calls, "generator must not be called for known questions")

	_, total, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestBulkGenerateSkipsDuplicatesWithinBatch(t *testing.T) {
	svc, gen := newTestService(t)

	result, err := svc.BulkGenerate(context.Background(), []string{
		"Who can publish events?",
		"who can publish EVENTS?",
		"   ",
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	assert.Len(t, result.Skipped, 1)
	assert.Equal(t, []string{"Who can publish events?"}, gen.lastBatch)
}

func TestBulkGenerateUpstreamFailureLeavesStateUnchanged(t *testing.T) {
	svc, gen := newTestService(t)
	ctx := context.Background()
	gen.fail = errors.New("upstream exploded")

	_, err := svc.BulkGenerate(ctx, []string{"How do I register?"})
	require.Error(t, err)

	_, total, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)

	// The failed batch can be retried once the upstream recovers.
	gen.fail = nil
	result, err := svc.BulkGenerate(ctx, []string{"How do I register?"})
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
}

func TestBulkGenerateEmptyInput(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.BulkGenerate(context.Background(), []string{"", "   "})
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestParseQAListToleratesCodeFence(t *testing.T) {
	pairs, err := parseQAList("```json\n[{\"question\":\"Q\",\"answer\":\"A\"}]\n```")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "A", pairs[0].Answer)

	_, err = parseQAList("sorry, I cannot help with that")
	assert.Error(t, err)
}
