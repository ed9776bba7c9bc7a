package mongostore

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	wellbeingrepos "github.com/yungbote/studyplan-backend/internal/data/repos/wellbeing"
	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
)

type moodRatingRepo struct{ s *Store }

func NewMoodRatingRepo(s *Store) wellbeingrepos.MoodRatingRepo { return &moodRatingRepo{s: s} }

func (r *moodRatingRepo) Create(dbc dbctx.Context, rows []*types.MoodRating) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	docs := make([]any, 0, len(rows))
	for _, row := range rows {
		ensureID(&row.ID)
		row.RecordedAt = orNow(row.RecordedAt)
		docs = append(docs, moodDoc{ID: row.ID.String(), UserID: row.UserID.String(), Rating: row.Rating, Note: row.Note, RecordedAt: row.RecordedAt})
	}
	_, err := r.s.collection(collMoodRatings).InsertMany(ctx, docs)
	return err
}

func (r *moodRatingRepo) ListSince(dbc dbctx.Context, userID uuid.UUID, since time.Time) ([]*types.MoodRating, error) {
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	filter := bson.M{"user_id": userID.String()}
	if !since.IsZero() {
		filter["recorded_at"] = bson.M{"$gte": since.UTC()}
	}
	cur, err := r.s.collection(collMoodRatings).Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "recorded_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []moodDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*types.MoodRating, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRow())
	}
	return out, nil
}

type journalEntryRepo struct{ s *Store }

func NewJournalEntryRepo(s *Store) wellbeingrepos.JournalEntryRepo { return &journalEntryRepo{s: s} }

func (r *journalEntryRepo) Create(dbc dbctx.Context, rows []*types.JournalEntry) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	docs := make([]any, 0, len(rows))
	for _, row := range rows {
		ensureID(&row.ID)
		row.CreatedAt = orNow(row.CreatedAt)
		docs = append(docs, journalDoc{ID: row.ID.String(), UserID: row.UserID.String(), Content: row.Content, CreatedAt: row.CreatedAt})
	}
	_, err := r.s.collection(collJournal).InsertMany(ctx, docs)
	return err
}

func (r *journalEntryRepo) ListRecent(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.JournalEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	cur, err := r.s.collection(collJournal).Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []journalDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*types.JournalEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRow())
	}
	return out, nil
}

type subjectScoreRepo struct{ s *Store }

func NewSubjectScoreRepo(s *Store) wellbeingrepos.SubjectScoreRepo { return &subjectScoreRepo{s: s} }

func (r *subjectScoreRepo) Create(dbc dbctx.Context, rows []*types.SubjectScore) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	docs := make([]any, 0, len(rows))
	for _, row := range rows {
		ensureID(&row.ID)
		row.RecordedAt = orNow(row.RecordedAt)
		docs = append(docs, scoreDoc{ID: row.ID.String(), UserID: row.UserID.String(), Subject: row.Subject, Score: row.Score, RecordedAt: row.RecordedAt})
	}
	_, err := r.s.collection(collScores).InsertMany(ctx, docs)
	return err
}

func (r *subjectScoreRepo) LatestBySubject(dbc dbctx.Context, userID uuid.UUID) ([]*types.SubjectScore, error) {
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID.String()}}},
		{{Key: "$sort", Value: bson.D{{Key: "recorded_at", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$group", Value: bson.M{"_id": "$subject", "doc": bson.M{"$first": "$$ROOT"}}}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$doc"}}},
		{{Key: "$sort", Value: bson.D{{Key: "subject", Value: 1}}}},
	}
	cur, err := r.s.collection(collScores).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []scoreDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*types.SubjectScore, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toRow())
	}
	return out, nil
}

type studySessionRepo struct{ s *Store }

func NewStudySessionRepo(s *Store) wellbeingrepos.StudySessionRepo { return &studySessionRepo{s: s} }

func (r *studySessionRepo) Create(dbc dbctx.Context, rows []*types.StudySession) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	docs := make([]any, 0, len(rows))
	for _, row := range rows {
		ensureID(&row.ID)
		row.StartedAt = orNow(row.StartedAt)
		docs = append(docs, sessionDoc{ID: row.ID.String(), UserID: row.UserID.String(), Subject: row.Subject, StartedAt: row.StartedAt, Minutes: row.Minutes})
	}
	_, err := r.s.collection(collSessions).InsertMany(ctx, docs)
	return err
}

func (r *studySessionRepo) LastStartedAt(dbc dbctx.Context, userID uuid.UUID) (*time.Time, error) {
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	opts := options.FindOne().SetSort(bson.D{{Key: "started_at", Value: -1}})
	var doc sessionDoc
	err := r.s.collection(collSessions).FindOne(ctx, bson.M{"user_id": userID.String()}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	started := doc.StartedAt.UTC()
	return &started, nil
}

type studyPreferencesRepo struct{ s *Store }

func NewStudyPreferencesRepo(s *Store) wellbeingrepos.StudyPreferencesRepo {
	return &studyPreferencesRepo{s: s}
}

func (r *studyPreferencesRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.StudyPreferences, error) {
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	var doc preferencesDoc
	err := r.s.collection(collPreferences).FindOne(ctx, bson.M{"user_id": userID.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toRow(), nil
}

func (r *studyPreferencesRepo) Upsert(dbc dbctx.Context, row *types.StudyPreferences) error {
	if row == nil || row.UserID == uuid.Nil {
		return nil
	}
	ctx, cancel := opContext(dbc.Ctx)
	defer cancel()
	row.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"preferred_study_time": row.PreferredStudyTime,
			"break_days":           []string(row.BreakDays),
			"max_daily_hours":      row.MaxDailyHours,
			"updated_at":           row.UpdatedAt,
		},
		"$setOnInsert": bson.M{"_id": ensureID(&row.ID)},
	}
	_, err := r.s.collection(collPreferences).UpdateOne(ctx, bson.M{"user_id": row.UserID.String()}, update, options.Update().SetUpsert(true))
	return err
}
