package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"exale/dto"
	"exale/services"
	"exale/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const testSecret = "test-secret"

type testServer struct {
	t      *testing.T
	router *gin.Engine
	tokens map[string]string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	st := store.NewMemoryStore()

	tokens := map[string]string{}
	for uid, role := range map[string]string{"owner": "owner", "admin": "admin", "agent": "agent"} {
		if err := st.Set(ctx, services.CollectionUsers, uid, map[string]interface{}{"name": uid, "email": uid + "@exale.net", "role": role}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
		token, err := services.CreateAccessToken(testSecret, uid, uid+"@exale.net", uid, time.Hour)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		tokens[uid] = token
	}

	router, err := NewRouter(Deps{
		Store:     st,
		Verifier:  services.NewJWTVerifier(testSecret),
		Passwords: services.NewStoredPasswords(st),
		SignIn:    services.NewPasswordSignIn(st, testSecret),
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	return &testServer{t: t, router: router, tokens: tokens}
}

// do sends body as JSON on behalf of who ("" for a guest) and decodes the
// response into a map.
func (s *testServer) do(method, path, who string, body interface{}) (int, map[string]interface{}) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if who != "" {
		req.Header.Set("Authorization", "Bearer "+s.tokens[who])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &out)
	}
	return w.Code, out
}

func (s *testServer) expect(method, path, who string, body interface{}, status int) map[string]interface{} {
	s.t.Helper()
	code, out := s.do(method, path, who, body)
	if code != status {
		s.t.Fatalf("%s %s as %q: expected %d, got %d: %v", method, path, who, status, code, out)
	}
	return out
}

func TestHealthAndMe(t *testing.T) {
	s := newTestServer(t)
	s.expect(http.MethodGet, "/", "", nil, http.StatusOK)

	guest := s.expect(http.MethodGet, "/me", "", nil, http.StatusOK)
	if guest["role"] != "guest" || guest["signedIn"] != false {
		t.Fatalf("unexpected guest session: %v", guest)
	}
	owner := s.expect(http.MethodGet, "/me", "owner", nil, http.StatusOK)
	if owner["badge"] != "Owner" || owner["canManageUsers"] != true || owner["canSeedTasks"] != true {
		t.Fatalf("unexpected owner session: %v", owner)
	}
	admin := s.expect(http.MethodGet, "/me", "admin", nil, http.StatusOK)
	if admin["canManageUsers"] != false || admin["canSeedTasks"] != true {
		t.Fatalf("unexpected admin session: %v", admin)
	}
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestServer(t)

	s.expect(http.MethodGet, "/tasks", "", nil, http.StatusUnauthorized)
	created := s.expect(http.MethodPost, "/intake", "", dto.IntakeRequest{Title: "New landing page", Company: "Foundry", Priority: 75}, http.StatusCreated)
	id, _ := created["id"].(string)

	list := s.expect(http.MethodGet, "/tasks", "agent", nil, http.StatusOK)
	if list["count"] != float64(1) {
		t.Fatalf("expected one task, got %v", list)
	}

	s.expect(http.MethodPut, "/tasks/"+id+"/status", "agent", dto.StatusRequest{Status: "accepted"}, http.StatusOK)
	s.expect(http.MethodPut, "/tasks/"+id+"/status", "agent", dto.StatusRequest{Status: "archived"}, http.StatusBadRequest)
	s.expect(http.MethodPost, "/tasks/"+id+"/comments", "agent", dto.CommentRequest{Text: "On it"}, http.StatusCreated)
	s.expect(http.MethodPost, "/tasks/"+id+"/comments", "agent", dto.CommentRequest{Text: "  "}, http.StatusBadRequest)
	s.expect(http.MethodPost, "/tasks/"+id+"/assign", "agent", nil, http.StatusOK)

	detail := s.expect(http.MethodGet, "/tasks/"+id, "agent", nil, http.StatusOK)
	if detail["status"] != "ACCEPTED" || detail["assignee"] != "agent@exale.net" || detail["canManage"] != false {
		t.Fatalf("unexpected detail: %v", detail)
	}
	if comments, _ := detail["comments"].([]interface{}); len(comments) != 1 {
		t.Fatalf("expected one comment, got %v", detail["comments"])
	}

	denied := s.expect(http.MethodDelete, "/tasks/"+id, "agent", nil, http.StatusForbidden)
	if denied["error"] != "Only Owners/Admins can delete tasks." {
		t.Fatalf("unexpected denial: %v", denied)
	}
	s.expect(http.MethodDelete, "/tasks/"+id, "admin", nil, http.StatusOK)
	s.expect(http.MethodGet, "/tasks/"+id, "agent", nil, http.StatusNotFound)

	s.expect(http.MethodPost, "/tasks/seed", "agent", nil, http.StatusForbidden)
	s.expect(http.MethodPost, "/tasks/seed", "owner", nil, http.StatusCreated)
	top := s.expect(http.MethodGet, "/priority", "agent", nil, http.StatusOK)
	if top["count"] != float64(3) {
		t.Fatalf("expected top three priorities, got %v", top)
	}
}

func TestUserManagement(t *testing.T) {
	s := newTestServer(t)

	denied := s.expect(http.MethodPost, "/users", "admin", dto.CreateUserRequest{Name: "Dan", Email: "dan@exale.net"}, http.StatusForbidden)
	if denied["error"] != "Only Owner can create users" {
		t.Fatalf("unexpected denial: %v", denied)
	}
	created := s.expect(http.MethodPost, "/users", "owner", dto.CreateUserRequest{Name: "Dan", Email: "dan@exale.net"}, http.StatusCreated)
	id, _ := created["id"].(string)

	s.expect(http.MethodPut, "/users/"+id+"/role", "admin", dto.RoleRequest{Role: "admin"}, http.StatusForbidden)
	s.expect(http.MethodPut, "/users/"+id+"/role", "owner", dto.RoleRequest{Role: "admin"}, http.StatusOK)

	users := s.expect(http.MethodGet, "/users", "agent", nil, http.StatusOK)
	if users["count"] != float64(4) {
		t.Fatalf("expected four users, got %v", users["count"])
	}
	s.expect(http.MethodDelete, "/users/"+id, "owner", nil, http.StatusOK)
}

func TestScheduleDeadlines(t *testing.T) {
	s := newTestServer(t)

	s.expect(http.MethodPost, "/schedule", "agent", dto.CreateEventRequest{Title: "Launch", Date: "2026-05-01", IsDeadline: true}, http.StatusForbidden)
	ev := s.expect(http.MethodPost, "/schedule", "admin", dto.CreateEventRequest{Title: "Launch", Date: "2026-05-01", IsDeadline: true}, http.StatusCreated)
	id, _ := ev["id"].(string)

	moved := s.expect(http.MethodPut, "/schedule/"+id+"/move", "agent", dto.MoveEventRequest{Start: "2026-05-02"}, http.StatusForbidden)
	if moved["error"] != "This is a deadline and cannot be moved." {
		t.Fatalf("unexpected denial: %v", moved)
	}
	s.expect(http.MethodPut, "/schedule/"+id+"/move", "owner", dto.MoveEventRequest{Start: "2026-05-02"}, http.StatusOK)

	all := s.expect(http.MethodGet, "/schedule?scope=all", "agent", nil, http.StatusOK)
	if all["count"] != float64(1) {
		t.Fatalf("expected the deadline in all scope, got %v", all)
	}
	mine := s.expect(http.MethodGet, "/schedule", "agent", nil, http.StatusOK)
	if mine["count"] != float64(0) {
		t.Fatalf("agent owns no events, got %v", mine)
	}
}

func TestDirectoryAndProfile(t *testing.T) {
	s := newTestServer(t)

	bad := s.expect(http.MethodPost, "/clients", "agent", dto.ClientRequest{Name: "ShopCo"}, http.StatusBadRequest)
	if bad["error"] != "Company Name and Email are required." {
		t.Fatalf("unexpected error: %v", bad)
	}
	s.expect(http.MethodPost, "/clients", "agent", dto.ClientRequest{Name: "ShopCo", Email: "pm@shopco.com"}, http.StatusCreated)
	s.expect(http.MethodPost, "/contacts", "", dto.ContactRequest{Name: "Dana"}, http.StatusUnauthorized)
	s.expect(http.MethodPost, "/contacts", "agent", dto.ContactRequest{Name: "Dana"}, http.StatusCreated)

	clients := s.expect(http.MethodGet, "/clients", "agent", nil, http.StatusOK)
	if clients["count"] != float64(1) {
		t.Fatalf("expected one client, got %v", clients)
	}

	s.expect(http.MethodPut, "/profile", "agent", dto.UpdateProfileRequest{Nickname: "cat"}, http.StatusNotFound)
	s.expect(http.MethodPut, "/profile/password", "agent", dto.PasswordRequest{Password: "short"}, http.StatusBadRequest)
	s.expect(http.MethodPut, "/profile/password", "agent", dto.PasswordRequest{Password: "long-enough"}, http.StatusOK)

	act := s.expect(http.MethodPut, "/me/activity", "agent", dto.ActivityRequest{Activity: "Busy"}, http.StatusOK)
	if act["activity"] != "Busy" {
		t.Fatalf("expected echo, got %v", act)
	}
}

func TestChatOverHTTP(t *testing.T) {
	s := newTestServer(t)

	post := func(text string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/chat/messages", strings.NewReader(`{"text":"`+text+`"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Chat-Session", "s1")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := post("go to my tasks")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var reply dto.ChatReply
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Action == nil || reply.Action.Tab != "tasks" || reply.Action.Title != "Tasks OS" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	if w := post(" "); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty text, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/chat/messages", nil)
	req.Header.Set("X-Chat-Session", "s1")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	var history struct {
		Messages []map[string]interface{} `json:"messages"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &history)
	if len(history.Messages) != 3 {
		t.Fatalf("expected greeting, question and reply, got %d", len(history.Messages))
	}

	fresh := httptest.NewRecorder()
	s.router.ServeHTTP(fresh, httptest.NewRequest(http.MethodGet, "/chat/messages", nil))
	if fresh.Header().Get("X-Chat-Session") == "" {
		t.Fatal("expected a new chat session id")
	}
}

func TestChatWebsocket(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws?session=ws1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteJSON(dto.ChatRequest{Text: "open the calendar"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var typing, msg dto.ChatFrame
	if err := conn.ReadJSON(&typing); err != nil || typing.Type != "typing" {
		t.Fatalf("expected typing frame, got %+v %v", typing, err)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "message" || msg.Role != "darc" || msg.Action == nil || msg.Action.Tab != "schedule" {
		t.Fatalf("unexpected reply frame: %+v", msg)
	}
}

func TestPasswordSignIn(t *testing.T) {
	s := newTestServer(t)
	creds := dto.SigninRequest{Email: "agent@exale.net", Password: "long-enough"}

	s.expect(http.MethodPost, "/auth/signin", "", creds, http.StatusUnauthorized)
	s.expect(http.MethodPut, "/profile/password", "agent", dto.PasswordRequest{Password: creds.Password}, http.StatusOK)

	s.expect(http.MethodPost, "/auth/signin", "", dto.SigninRequest{Email: creds.Email, Password: "wrong-pass"}, http.StatusUnauthorized)
	s.expect(http.MethodPost, "/auth/signin", "", dto.SigninRequest{Email: creds.Email}, http.StatusBadRequest)

	out := s.expect(http.MethodPost, "/auth/signin", "", creds, http.StatusOK)
	token, _ := out["accessToken"].(string)
	if token == "" || out["role"] != "agent" {
		t.Fatalf("unexpected sign-in response: %v", out)
	}

	s.tokens["signed-in"] = token
	me := s.expect(http.MethodGet, "/me", "signed-in", nil, http.StatusOK)
	if me["uid"] != "agent" || me["email"] != "agent@exale.net" || me["signedIn"] != true {
		t.Fatalf("token from sign-in did not open a session: %v", me)
	}
}
