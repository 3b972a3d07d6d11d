package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ExamResultsKey returns the key holding an exam's retained result history.
func (r *CacheKeyStruct) ExamResultsKey(examID string) string {
	return fmt.Sprintf("exam:%s:results", examID)
}

// ExamResultsChannel returns the Redis PubSub channel that carries new results for an exam.
func (r *CacheKeyStruct) ExamResultsChannel(examID string) string {
	return fmt.Sprintf("exam:%s:results:live", examID)
}

// AdminSessionKey returns the key for an admin session token id.
func (r *CacheKeyStruct) AdminSessionKey(jti string) string {
	return fmt.Sprintf("admin:session:%s", jti)
}

var CacheKey = NewCacheKeyStruct()
