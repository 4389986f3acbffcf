package services

import (
	"sync"
	"testing"

	"github.com/mryasheyt/Logic-loop-jklu/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryCrisisStore is an in-memory compare-and-set latch with the same
// win-exactly-once semantics as the filtered Mongo update.
type memoryCrisisStore struct {
	mu        sync.Mutex
	escalated map[primitive.ObjectID]bool
	flagged   []string
}

func newMemoryCrisisStore() *memoryCrisisStore {
	return &memoryCrisisStore{escalated: map[primitive.ObjectID]bool{}}
}

func (m *memoryCrisisStore) tryEscalate(sessionID primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.escalated[sessionID] {
		return false, nil
	}
	m.escalated[sessionID] = true
	return true, nil
}

func (m *memoryCrisisStore) flagUser(userID string, flagged bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flagged = append(m.flagged, userID)
	return nil
}

type recordingEmitter struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingEmitter) Emit(event string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func withMemoryCrisisStore(t *testing.T) (*memoryCrisisStore, *recordingEmitter) {
	t.Helper()
	store := newMemoryCrisisStore()
	prevStore := escalations
	escalations = store
	t.Cleanup(func() { escalations = prevStore })

	emitter := &recordingEmitter{}
	prevEmitter := crisisEmitter
	SetCrisisEmitter(emitter)
	t.Cleanup(func() { SetCrisisEmitter(prevEmitter) })

	return store, emitter
}

func TestEscalateRiskLevelTakesMax(t *testing.T) {
	assert.Equal(t, models.RiskLow, EscalateRiskLevel(models.RiskNone, models.RiskLow))
	assert.Equal(t, models.RiskHigh, EscalateRiskLevel(models.RiskModerate, models.RiskHigh))
	assert.Equal(t, models.RiskModerate, EscalateRiskLevel(models.RiskModerate, models.RiskLow))
	assert.Equal(t, models.RiskHigh, EscalateRiskLevel(models.RiskHigh, models.RiskNone))
}

func TestSessionRiskIsMonotonic(t *testing.T) {
	messageRisks := []string{
		models.RiskNone, models.RiskLow, models.RiskHigh,
		models.RiskNone, models.RiskModerate, models.RiskLow,
	}

	level := models.RiskNone
	var history []string
	for _, messageRisk := range messageRisks {
		level = EscalateRiskLevel(level, messageRisk)
		history = append(history, level)
	}

	assert.Equal(t, []string{
		models.RiskNone, models.RiskLow, models.RiskHigh,
		models.RiskHigh, models.RiskHigh, models.RiskHigh,
	}, history)

	// Non-decreasing under the order none < low < moderate < high
	for i := 1; i < len(history); i++ {
		assert.GreaterOrEqual(t, riskOrder[history[i]], riskOrder[history[i-1]])
	}
}

func TestShouldUpdateBaseline(t *testing.T) {
	assert.True(t, ShouldUpdateBaseline(models.RiskNone))
	assert.True(t, ShouldUpdateBaseline(models.RiskLow))
	assert.False(t, ShouldUpdateBaseline(models.RiskModerate),
		"crisis-period language must not leak into the baseline")
	assert.False(t, ShouldUpdateBaseline(models.RiskHigh))
}

func TestAdvanceSessionRiskBelowHighHasNoSideEffects(t *testing.T) {
	session := &models.ChatSession{RiskLevel: models.RiskLow}

	triggered, err := AdvanceSessionRisk(session, models.RiskModerate)

	assert.NoError(t, err)
	assert.False(t, triggered)
	assert.Equal(t, models.RiskModerate, session.RiskLevel)
	assert.False(t, session.EscalatedToCounselor)
}

func TestAdvanceSessionRiskFiresSideEffectsOnce(t *testing.T) {
	store, emitter := withMemoryCrisisStore(t)

	session := &models.ChatSession{
		ID:        primitive.NewObjectID(),
		UserID:    "user-1",
		RiskLevel: models.RiskModerate,
	}

	triggered, err := AdvanceSessionRisk(session, models.RiskHigh)

	assert.NoError(t, err)
	assert.True(t, triggered)
	assert.True(t, session.EscalatedToCounselor)
	assert.Equal(t, []string{"user-1"}, store.flagged)
	assert.Equal(t, []string{"crisis:escalated"}, emitter.events)

	// A further high-risk message on the now-latched session is inert
	triggered, err = AdvanceSessionRisk(session, models.RiskHigh)
	assert.NoError(t, err)
	assert.False(t, triggered)
	assert.Len(t, emitter.events, 1)
}

func TestAdvanceSessionRiskConcurrentHighEscalatesOnce(t *testing.T) {
	store, emitter := withMemoryCrisisStore(t)

	// Two requests race the same session: each handler works on its own copy
	// of the document, so both pass the in-memory latched check and only the
	// compare-and-set decides the winner.
	sessionID := primitive.NewObjectID()
	results := make(chan bool, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := &models.ChatSession{
				ID:        sessionID,
				UserID:    "user-1",
				RiskLevel: models.RiskModerate,
			}
			triggered, err := AdvanceSessionRisk(session, models.RiskHigh)
			assert.NoError(t, err)
			results <- triggered
		}()
	}
	wg.Wait()
	close(results)

	triggeredCount := 0
	for triggered := range results {
		if triggered {
			triggeredCount++
		}
	}
	assert.Equal(t, 1, triggeredCount, "exactly one request wins the latch")
	assert.Equal(t, []string{"user-1"}, store.flagged, "crisis flag written once")
	assert.Equal(t, []string{"crisis:escalated"}, emitter.events, "alert emitted once")
}

func TestLowerRiskLevels(t *testing.T) {
	assert.Empty(t, lowerRiskLevels(models.RiskNone))
	assert.ElementsMatch(t, []string{models.RiskNone}, lowerRiskLevels(models.RiskLow))
	assert.ElementsMatch(t,
		[]string{models.RiskNone, models.RiskLow, models.RiskModerate},
		lowerRiskLevels(models.RiskHigh))
}

func TestAdvanceSessionRiskAlreadyLatched(t *testing.T) {
	// A session that already escalated must never re-fire, even on further
	// high-risk messages.
	session := &models.ChatSession{
		RiskLevel:            models.RiskHigh,
		EscalatedToCounselor: true,
	}

	triggered, err := AdvanceSessionRisk(session, models.RiskHigh)

	assert.NoError(t, err)
	assert.False(t, triggered)
	assert.Equal(t, models.RiskHigh, session.RiskLevel)
}
