package auth

import (
	"errors"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateKey(t *testing.T) {
	require.True(t, isDuplicateKey(&mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	require.False(t, isDuplicateKey(&mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}))
	require.False(t, isDuplicateKey(errors.New("connection reset")))
	require.False(t, isDuplicateKey(nil))
}
