package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/response"
	"github.com/portfolio-site/backend/internal/validator"
)

func bind(t *testing.T, body string, dst interface{}) *validator.Error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return validator.Bind(c, dst)
}

func TestBind(t *testing.T) {
	tests := map[string]struct {
		body      string
		wantCode  response.ErrCode
		wantField string
	}{
		"valid": {
			body: `{"title":"t","questions":[{"text":"q","options":["a","b","c","d"],"correct_option_index":0}]}`,
		},
		"malformed json": {
			body:     `{"title":`,
			wantCode: response.ErrInvalidPayload, wantField: "detail",
		},
		"missing title": {
			body:     `{"questions":[{"text":"q","options":["a","b","c","d"],"correct_option_index":0}]}`,
			wantCode: response.ErrValidation, wantField: "title",
		},
		"no questions": {
			body:     `{"title":"t","questions":[]}`,
			wantCode: response.ErrValidation, wantField: "questions",
		},
		"three options": {
			body:     `{"title":"t","questions":[{"text":"q","options":["a","b","c"],"correct_option_index":0}]}`,
			wantCode: response.ErrValidation, wantField: "questions[0].options",
		},
		"answer index out of range": {
			body:     `{"title":"t","questions":[{"text":"q","options":["a","b","c","d"],"correct_option_index":4}]}`,
			wantCode: response.ErrValidation, wantField: "questions[0].correct_option_index",
		},
		"negative wrong mark": {
			body:     `{"title":"t","wrong_mark":-1,"questions":[{"text":"q","options":["a","b","c","d"],"correct_option_index":0}]}`,
			wantCode: response.ErrValidation, wantField: "wrong_mark",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			var req model.CreateExamRequest
			verr := bind(t, tt.body, &req)
			if tt.wantCode == "" {
				require.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			require.Equal(t, tt.wantCode, verr.Code)
			require.Contains(t, verr.Fields, tt.wantField)
		})
	}
}

func TestBindSubmitAnswers(t *testing.T) {
	var req model.SubmitExamRequest
	require.Nil(t, bind(t, `{"answers":[0,null,3]}`, &req))
	require.Len(t, req.Answers, 3)
	require.Nil(t, req.Answers[1])

	var missing model.SubmitExamRequest
	verr := bind(t, `{}`, &missing)
	require.NotNil(t, verr)
	require.Equal(t, response.ErrValidation, verr.Code)

	var wrongType model.SubmitExamRequest
	verr = bind(t, `{"answers":"abc"}`, &wrongType)
	require.NotNil(t, verr)
	require.Equal(t, response.ErrInvalidPayload, verr.Code)
}
