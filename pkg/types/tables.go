package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "sakura_"

const (
	TABLE_USER     = TableName("user")
	TABLE_NOTE     = TableName("note")
	TABLE_GROUP    = TableName("group")
	TABLE_ANSWER   = TableName("answer")
	TABLE_FRAGMENT = TableName("fragment")
)
