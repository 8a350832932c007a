package testinfra

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"

	"caseflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

func ExecuteRequest(req *http.Request, router *gin.Engine) (int, string, http.Header) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	bodyBytes, _ := ioutil.ReadAll(resp.Body)
	return resp.StatusCode, string(bodyBytes), resp.Header
}

// SignIn registers a session in the token cache and returns the request
// cookie carrying it.
func SignIn(token string, uid types.ID, name string) (*session.Session, *http.Cookie) {
	s := &session.Session{Token: token, Identity: session.Identity{ID: uid, Name: name}}
	session.TokenCache.SetDefault(token, s)
	return s, &http.Cookie{Name: session.KeySecToken, Value: token}
}

// BuildSession build a session context for direct manager invocations.
func BuildSession(uid types.ID, name string) *session.Session {
	return &session.Session{Token: "test-token", Identity: session.Identity{ID: uid, Name: name}}
}
