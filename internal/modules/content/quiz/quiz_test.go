package quiz

import (
	"errors"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func TestScoreCountsMatchesPerQuestion(t *testing.T) {
	creator := map[int]string{1: "Pizza", 2: "Beach Resort", 3: "Quality Time", 4: "Sleeping In", 5: "Flight"}
	attempt := map[int]string{1: "Pizza", 2: "Mountain Cabin", 3: "Quality Time", 4: "Sleeping In", 5: "Telepathy"}

	result := Score(DefaultQuestions, creator, attempt)
	require.Equal(t, 3, result.Matches)
	require.Equal(t, 5, result.Total)
	require.Equal(t, 60, result.MatchScore)
}

func TestScoreRoundsPercentage(t *testing.T) {
	questions := DefaultQuestions[:3]
	creator := map[int]string{1: "a", 2: "b", 3: "c"}
	attempt := map[int]string{1: "a", 2: "x", 3: "x"}

	// 1/3 rounds to 33.
	require.Equal(t, 33, Score(questions, creator, attempt).MatchScore)

	attempt[2] = "b"
	// 2/3 rounds to 67.
	require.Equal(t, 67, Score(questions, creator, attempt).MatchScore)
}

func TestScoreIgnoresUnansweredQuestions(t *testing.T) {
	creator := map[int]string{1: "a", 2: "b", 3: "c", 4: "d", 5: "e"}

	result := Score(DefaultQuestions, creator, map[int]string{})
	require.Zero(t, result.Matches)
	require.Zero(t, result.MatchScore)
}

func TestScoreEmptyQuestionSet(t *testing.T) {
	require.Zero(t, Score(nil, nil, nil).MatchScore)
}

func TestIsDuplicateKey(t *testing.T) {
	require.True(t, isDuplicateKey(&mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	require.False(t, isDuplicateKey(&mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}))
	require.False(t, isDuplicateKey(errors.New("connection reset")))
}
