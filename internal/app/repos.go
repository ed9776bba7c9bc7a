package app

import (
	"fmt"

	wellbeingrepos "github.com/yungbote/studyplan-backend/internal/data/repos/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/data/mongostore"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type Repos struct {
	MoodRating       wellbeingrepos.MoodRatingRepo
	JournalEntry     wellbeingrepos.JournalEntryRepo
	SubjectScore     wellbeingrepos.SubjectScoreRepo
	StudySession     wellbeingrepos.StudySessionRepo
	StudyPreferences wellbeingrepos.StudyPreferencesRepo
}

func wireRepos(log *logger.Logger, clients Clients) (Repos, error) {
	log.Info("Wiring repos...")
	switch {
	case clients.Postgres != nil:
		gdb := clients.Postgres.DB()
		return Repos{
			MoodRating:       wellbeingrepos.NewMoodRatingRepo(gdb, log),
			JournalEntry:     wellbeingrepos.NewJournalEntryRepo(gdb, log),
			SubjectScore:     wellbeingrepos.NewSubjectScoreRepo(gdb, log),
			StudySession:     wellbeingrepos.NewStudySessionRepo(gdb, log),
			StudyPreferences: wellbeingrepos.NewStudyPreferencesRepo(gdb, log),
		}, nil
	case clients.Mongo != nil:
		s := clients.Mongo
		return Repos{
			MoodRating:       mongostore.NewMoodRatingRepo(s),
			JournalEntry:     mongostore.NewJournalEntryRepo(s),
			SubjectScore:     mongostore.NewSubjectScoreRepo(s),
			StudySession:     mongostore.NewStudySessionRepo(s),
			StudyPreferences: mongostore.NewStudyPreferencesRepo(s),
		}, nil
	default:
		return Repos{}, fmt.Errorf("no data backend configured")
	}
}
