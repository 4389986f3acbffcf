package services

import (
	"context"
	"sync"
	"time"

	"github.com/mryasheyt/Logic-loop-jklu/config"
	"github.com/mryasheyt/Logic-loop-jklu/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// riskOrder gives the linear order none < low < moderate < high.
var riskOrder = map[string]int{
	models.RiskNone:     0,
	models.RiskLow:      1,
	models.RiskModerate: 2,
	models.RiskHigh:     3,
}

// Emitter is the realtime channel crisis alerts are broadcast on.
type Emitter interface {
	Emit(event string, payload interface{})
}

var crisisEmitter Emitter

// SetCrisisEmitter wires the realtime hub in at startup.
func SetCrisisEmitter(e Emitter) {
	crisisEmitter = e
}

// EscalateRiskLevel returns the higher of the two levels. Session risk only
// ever escalates, never de-escalates, within the lifetime of a session.
func EscalateRiskLevel(current, messageRisk string) string {
	if riskOrder[messageRisk] > riskOrder[current] {
		return messageRisk
	}
	return current
}

// ShouldUpdateBaseline reports whether the session's cumulative risk level
// permits folding this conversation into the user's baseline. Updating on
// risky messages would corrupt the normal-language baseline with
// crisis-period language.
func ShouldUpdateBaseline(sessionRisk string) bool {
	return sessionRisk == models.RiskNone || sessionRisk == models.RiskLow
}

func CreateChatSession(userID, sessionType string) (*models.ChatSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("chat_sessions")
	now := time.Now()
	session := &models.ChatSession{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		SessionType: sessionType,
		Messages:    []models.Message{},
		RiskLevel:   models.RiskNone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := coll.InsertOne(ctx, session)
	return session, err
}

func GetChatSession(sessionID, userID string) (*models.ChatSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	oid, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, err
	}
	coll := config.OpenCollection("chat_sessions")
	var session models.ChatSession
	err = coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// lowerRiskLevels returns the levels strictly below the given one in the
// none < low < moderate < high order.
func lowerRiskLevels(level string) []string {
	lower := []string{}
	for l, ord := range riskOrder {
		if ord < riskOrder[level] {
			lower = append(lower, l)
		}
	}
	return lower
}

// AppendMessages pushes messages onto the session and persists the (already
// escalated) risk level. The level write is conditional on the stored level
// being lower, so the stored level stays monotonic even when two messages in
// the same session race each other.
func AppendMessages(sessionID primitive.ObjectID, riskLevel string, messages ...models.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("chat_sessions")
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "messages", Value: bson.D{{Key: "$each", Value: messages}}}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: time.Now()}}},
	}
	if _, err := coll.UpdateOne(ctx, bson.M{"_id": sessionID}, update); err != nil {
		return err
	}

	lower := lowerRiskLevels(riskLevel)
	if len(lower) == 0 {
		return nil
	}
	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": sessionID, "risk_level": bson.M{"$in": lower}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "risk_level", Value: riskLevel}}}},
	)
	return err
}

// crisisStore persists the escalation outcome: the one-way counselor latch
// and the account-level crisis flag. Swappable so the latch semantics are
// testable without a live database.
type crisisStore interface {
	tryEscalate(sessionID primitive.ObjectID) (bool, error)
	flagUser(userID string, flagged bool) error
}

type mongoCrisisStore struct{}

func (mongoCrisisStore) tryEscalate(sessionID primitive.ObjectID) (bool, error) {
	return TryEscalateToCounselor(sessionID)
}

func (mongoCrisisStore) flagUser(userID string, flagged bool) error {
	return FlagUserForCrisis(userID, flagged)
}

var escalations crisisStore = mongoCrisisStore{}

// TryEscalateToCounselor attempts the one-way counselor latch with
// compare-and-set semantics: only the update that observes
// escalated_to_counselor == false wins, so the crisis side effects fire
// exactly once per session even under duplicate submits.
func TryEscalateToCounselor(sessionID primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("chat_sessions")
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": sessionID, "escalated_to_counselor": false},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "escalated_to_counselor", Value: true},
			{Key: "updated_at", Value: time.Now()},
		}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// AdvanceSessionRisk escalates the session's cumulative risk with the new
// message's level and, on first entry into high, wins the counselor latch and
// fires the crisis side effects: the persisted account flag and the realtime
// alert to any subscribed counselor dashboards.
func AdvanceSessionRisk(session *models.ChatSession, messageRisk string) (bool, error) {
	session.RiskLevel = EscalateRiskLevel(session.RiskLevel, messageRisk)

	if session.RiskLevel != models.RiskHigh || session.EscalatedToCounselor {
		return false, nil
	}

	won, err := escalations.tryEscalate(session.ID)
	if err != nil || !won {
		return false, err
	}
	session.EscalatedToCounselor = true

	// A downstream notification failure must never suppress the computed risk:
	// the flag write comes first and errors there propagate after the latch.
	if err := escalations.flagUser(session.UserID, true); err != nil {
		return true, err
	}
	if crisisEmitter != nil {
		crisisEmitter.Emit("crisis:escalated", map[string]interface{}{
			"userId":    session.UserID,
			"sessionId": session.ID.Hex(),
			"timestamp": time.Now(),
		})
	}
	return true, nil
}

// FlagUserForCrisis sets or clears the persisted crisis flag. The flag
// survives across sessions until a counselor explicitly clears it.
func FlagUserForCrisis(userID string, flagged bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("users")
	_, err := coll.UpdateOne(ctx, bson.M{"user_id": userID}, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "is_flagged_for_crisis", Value: flagged},
			{Key: "updated_at", Value: time.Now()},
		}},
	})
	return err
}

func GetChatHistory(userID string, since time.Time) ([]models.ChatSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("chat_sessions")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{
		"user_id":    userID,
		"created_at": bson.M{"$gte": since},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []models.ChatSession
	err = cursor.All(ctx, &out)
	return out, err
}

// baselineLocks serializes baseline read-modify-write per user so concurrent
// messages cannot lose samples_collected increments.
var baselineLocks sync.Map

func baselineLock(userID string) *sync.Mutex {
	lock, _ := baselineLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// UpdateUserBaseline folds a low-risk message sample into the user's stored
// linguistic baseline under the per-user lock.
func UpdateUserBaseline(userID string, sample models.MessageAnalysis) (models.LinguisticBaseline, error) {
	mu := baselineLock(userID)
	mu.Lock()
	defer mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := config.OpenCollection("users")

	var user models.User
	if err := coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user); err != nil {
		return models.LinguisticBaseline{}, err
	}

	updated := UpdateBaseline(user.LinguisticBaseline, sample)
	_, err := coll.UpdateOne(ctx, bson.M{"user_id": userID}, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "linguistic_baseline", Value: updated},
			{Key: "updated_at", Value: time.Now()},
		}},
	})
	return updated, err
}
