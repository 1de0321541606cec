package revizia

import "time"

// Points awarded per correct answer.
const pointsPerCorrectAnswer = 10

// RankForPoints derives the rank tier from cumulative points. Ranks are
// always recomputed from scratch, never adjusted incrementally.
func RankForPoints(points int) Rank {
	switch {
	case points >= 1000:
		return RankExpert
	case points >= 500:
		return RankAdvanced
	case points >= 200:
		return RankIntermediate
	default:
		return RankBeginner
	}
}

// ApplyResult folds one completed quiz into the user's cumulative stats and
// returns the updated copy. today is the calendar date the quiz was completed
// on; passing it in keeps the streak arithmetic testable.
//
// The streak counts consecutive study days: it grows by one when the last
// study date was yesterday, restarts at one after a gap, and is left alone
// when the user already studied today.
func ApplyResult(stats UserStats, correct, total int, today time.Time) UserStats {
	today = dateOnly(today)

	stats.QuizzesCompleted++
	stats.CorrectAnswers += correct
	stats.Points += correct * pointsPerCorrectAnswer
	stats.Rank = RankForPoints(stats.Points)

	switch {
	case stats.LastStudyDate != nil && stats.LastStudyDate.Equal(today.AddDate(0, 0, -1)):
		stats.StudyStreak++
	case stats.LastStudyDate == nil || !stats.LastStudyDate.Equal(today):
		stats.StudyStreak = 1
	}
	stats.LastStudyDate = &today

	return stats
}

// dateOnly truncates a timestamp to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
