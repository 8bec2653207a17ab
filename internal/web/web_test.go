package web

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/app"
	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/domain"
	"github.com/Zachkp/folio/internal/site"
	"github.com/Zachkp/folio/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testSite struct {
	t   *testing.T
	srv *httptest.Server
	app *app.App
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	s := store.New(store.NewMemory())
	a := app.WithStore(s, config.Config{})

	view, err := site.NewView(context.Background(), a.Projects, a.Skills, a.About, s)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}
	srv := httptest.NewServer(New(a, view, "test-secret").Handler())
	t.Cleanup(func() {
		srv.Close()
		view.Close()
		a.Close()
	})
	return &testSite{t: t, srv: srv, app: a}
}

// client returns a browser: it keeps cookies and does not follow redirects.
func (ts *testSite) client() *http.Client {
	jar, err := cookiejar.New(nil)
	if err != nil {
		ts.t.Fatal(err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (ts *testSite) admin() *http.Client {
	c := ts.client()
	res := ts.post(c, "/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	if res.StatusCode != http.StatusSeeOther {
		ts.t.Fatalf("login status = %d, want 303", res.StatusCode)
	}
	return c
}

func (ts *testSite) get(c *http.Client, path string) *http.Response {
	ts.t.Helper()
	res, err := c.Get(ts.srv.URL + path)
	if err != nil {
		ts.t.Fatalf("GET %s: %v", path, err)
	}
	return res
}

func (ts *testSite) post(c *http.Client, path string, form url.Values) *http.Response {
	ts.t.Helper()
	res, err := c.PostForm(ts.srv.URL+path, form)
	if err != nil {
		ts.t.Fatalf("POST %s: %v", path, err)
	}
	return res
}

func body(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestHomePage(t *testing.T) {
	ts := newTestSite(t)

	res := ts.get(ts.client(), "/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	html := body(t, res)
	for _, want := range []string{"E-Commerce Platform", "CRM System", `hx-post="/contact"`, "/events"} {
		if !strings.Contains(html, want) {
			t.Errorf("home page is missing %q", want)
		}
	}
}

func TestHomePageStatisticBars(t *testing.T) {
	ts := newTestSite(t)
	events := openEvents(t, ts)

	about := domain.DefaultAbout()
	about.Title = "Hi"
	for _, pct := range []int{20, 55, 90} {
		about.AppendStatistic(domain.Statistic{Name: fmt.Sprintf("Skill %d", pct), Percentage: pct})
	}
	if err := ts.app.About.Save(context.Background(), about); err != nil {
		t.Fatal(err)
	}
	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("public page was not refreshed")
	}

	html := body(t, ts.get(ts.client(), "/"))
	for _, want := range []string{"width: 20%", "width: 55%", "width: 90%"} {
		if !strings.Contains(html, want) {
			t.Errorf("home page is missing a bar with %q", want)
		}
	}
}

func TestContactForm(t *testing.T) {
	ts := newTestSite(t)
	c := ts.client()

	res := ts.post(c, "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Hello"},
		"message": {"Nice site"},
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if html := body(t, res); !strings.Contains(html, "Thank you for your message") {
		t.Errorf("unexpected response: %s", html)
	}

	messages, err := ts.app.Messages.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 || messages[0].Name != "Ada" || messages[0].Read {
		t.Fatalf("messages = %+v", messages)
	}
}

func TestContactFormRejectsMissingFields(t *testing.T) {
	ts := newTestSite(t)

	res := ts.post(ts.client(), "/contact", url.Values{"name": {"Ada"}, "email": {"not-an-email"}})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 so the fragment is swapped in", res.StatusCode)
	}
	html := body(t, res)
	for _, want := range []string{"email must be a valid email address", "subject is required", "message is required"} {
		if !strings.Contains(html, want) {
			t.Errorf("error fragment is missing %q", want)
		}
	}

	messages, _ := ts.app.Messages.List(context.Background())
	if len(messages) != 0 {
		t.Errorf("stored %d messages, want 0", len(messages))
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	ts := newTestSite(t)

	for _, path := range []string{"/admin", "/admin/dashboard", "/admin/projects", "/admin/messages"} {
		res := ts.get(ts.client(), path)
		res.Body.Close()
		if res.StatusCode != http.StatusFound || res.Header.Get("Location") != "/admin/login" {
			t.Errorf("GET %s = %d %q, want redirect to login", path, res.StatusCode, res.Header.Get("Location"))
		}
	}
}

func TestLogin(t *testing.T) {
	ts := newTestSite(t)
	c := ts.client()

	res := ts.post(c, "/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}})
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.StatusCode)
	}
	if html := body(t, res); !strings.Contains(html, "Invalid credentials") {
		t.Error("missing error message")
	}

	res = ts.post(c, "/admin/login", url.Values{"username": {""}, "password": {""}})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty fields status = %d, want 400", res.StatusCode)
	}

	res = ts.post(c, "/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}})
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/admin/dashboard" {
		t.Fatalf("login = %d %q", res.StatusCode, res.Header.Get("Location"))
	}

	res = ts.get(c, "/admin/dashboard")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status = %d", res.StatusCode)
	}
	if html := body(t, res); !strings.Contains(html, "Welcome back!") {
		t.Error("missing login flash")
	}

	// the stored flag alone does not let another browser in
	res = ts.get(ts.client(), "/admin/dashboard")
	res.Body.Close()
	if res.StatusCode != http.StatusFound {
		t.Errorf("other browser status = %d, want 302", res.StatusCode)
	}
}

func TestLogoutAsksFirst(t *testing.T) {
	ts := newTestSite(t)
	c := ts.admin()

	res := ts.post(c, "/admin/logout", url.Values{})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want confirmation page", res.StatusCode)
	}
	body(t, res)

	res = ts.post(c, "/admin/logout", url.Values{"confirm": {"yes"}})
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/admin/login" {
		t.Fatalf("logout = %d %q", res.StatusCode, res.Header.Get("Location"))
	}
	if ts.app.Auth.IsAuthenticated(context.Background()) {
		t.Error("still authenticated after logout")
	}

	res = ts.get(c, "/admin/dashboard")
	res.Body.Close()
	if res.StatusCode != http.StatusFound {
		t.Errorf("dashboard after logout = %d, want 302", res.StatusCode)
	}
}

func TestCreateAndListProjects(t *testing.T) {
	ts := newTestSite(t)
	c := ts.admin()

	res := ts.post(c, "/admin/projects/new", url.Values{
		"title":    {"Go Service"},
		"category": {"Backend"},
		"status":   {"Active"},
		"date":     {"2024-06-01"},
		"link":     {"https://example.com"},
	})
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("create status = %d", res.StatusCode)
	}

	projects, _ := ts.app.Projects.List(context.Background())
	if len(projects) != 4 || projects[0].Title != "Go Service" {
		t.Fatalf("new project not prepended: %+v", projects)
	}

	html := body(t, ts.get(c, "/admin/projects"))
	for _, want := range []string{"Go Service", `Project &#34;Go Service&#34; added.`} {
		if !strings.Contains(html, want) {
			t.Errorf("list is missing %q", want)
		}
	}

	res = ts.post(c, "/admin/projects/new", url.Values{"title": {"No date"}, "category": {"x"}, "status": {"Paused"}})
	html = body(t, res)
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid create status = %d", res.StatusCode)
	}
	if !strings.Contains(html, "must be one of Active, Inactive") {
		t.Error("missing status problem")
	}
}

func TestFilterProjects(t *testing.T) {
	ts := newTestSite(t)
	c := ts.admin()

	html := body(t, ts.get(c, "/admin/projects?status=Inactive"))
	if !strings.Contains(html, "Blog Site") || strings.Contains(html, "CRM System") {
		t.Error("status filter not applied")
	}

	html = body(t, ts.get(c, "/admin/projects?q=crm"))
	if !strings.Contains(html, "CRM System") || strings.Contains(html, "Blog Site") {
		t.Error("search not applied")
	}

	res := ts.get(c, "/admin/projects?where="+url.QueryEscape("title =="))
	html = body(t, res)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("bad where status = %d", res.StatusCode)
	}
	if !strings.Contains(html, "CRM System") || !strings.Contains(html, "Blog Site") {
		t.Error("a bad where clause should fall back to the unfiltered list")
	}

	html = body(t, ts.get(c, "/admin/projects?where="+url.QueryEscape(`date < "2024-04-01"`)))
	if !strings.Contains(html, "CRM System") || strings.Contains(html, "Blog Site") {
		t.Error("where clause not applied")
	}
}

func TestExportProjects(t *testing.T) {
	ts := newTestSite(t)

	res := ts.get(ts.admin(), "/admin/projects/export")
	if got := res.Header.Get("Content-Disposition"); got != "attachment; filename=projects.json" {
		t.Errorf("Content-Disposition = %q", got)
	}
	var projects []domain.Project
	if err := json.Unmarshal([]byte(body(t, res)), &projects); err != nil {
		t.Fatalf("export is not JSON: %v", err)
	}
	if len(projects) != 3 {
		t.Errorf("exported %d projects, want 3", len(projects))
	}
}

func upload(t *testing.T, c *http.Client, target, field, name string, content []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	res, err := c.Post(target, w.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestImportProjects(t *testing.T) {
	ts := newTestSite(t)
	c := ts.admin()

	res := upload(t, c, ts.srv.URL+"/admin/projects/import", "file", "bad.json", []byte(`{"id":"1"}`))
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", res.StatusCode)
	}
	html := body(t, ts.get(c, "/admin/projects"))
	if !strings.Contains(html, "the file must contain a JSON array of projects") {
		t.Error("missing import error flash")
	}
	projects, _ := ts.app.Projects.List(context.Background())
	if len(projects) != 3 {
		t.Fatalf("failed import changed the collection: %d projects", len(projects))
	}

	res = upload(t, c, ts.srv.URL+"/admin/projects/import", "file", "good.json",
		[]byte(`[{"id":"a","title":"Imported","category":"x","status":"Active","date":"2024-01-01","image":""}]`))
	res.Body.Close()
	projects, _ = ts.app.Projects.List(context.Background())
	if len(projects) != 1 || projects[0].Title != "Imported" {
		t.Fatalf("projects after import = %+v", projects)
	}
}

func TestDeleteProjectConfirmation(t *testing.T) {
	ts := newTestSite(t)
	c := ts.admin()
	ctx := context.Background()

	res := ts.post(c, "/admin/projects/1/delete", url.Values{})
	html := body(t, res)
	if res.StatusCode != http.StatusOK || !strings.Contains(html, `name="confirm" value="yes"`) {
		t.Fatalf("expected a confirmation page, got %d", res.StatusCode)
	}

	res = ts.post(c, "/admin/projects/1/delete", url.Values{"confirm": {"no"}})
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("confirm=no status = %d", res.StatusCode)
	}
	if projects, _ := ts.app.Projects.List(ctx); len(projects) != 3 {
		t.Fatal("project deleted without confirmation")
	}

	res = ts.post(c, "/admin/projects/1/delete", url.Values{"confirm": {"yes"}})
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("confirm=yes status = %d", res.StatusCode)
	}
	if _, err := ts.app.Projects.Get(ctx, "1"); err == nil {
		t.Error("project still present")
	}
	if projects, _ := ts.app.Projects.List(ctx); len(projects) != 2 {
		t.Errorf("%d projects left, want 2", len(projects))
	}

	res = ts.post(c, "/admin/projects/missing/delete", url.Values{"confirm": {"yes"}})
	res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", res.StatusCode)
	}
}

func TestSkills(t *testing.T) {
	ts := newTestSite(t)
	c := ts.admin()
	ctx := context.Background()

	res := ts.post(c, "/admin/skills", url.Values{"name": {"Go"}, "color": {"bg-blue-500"}})
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d", res.StatusCode)
	}
	skills, _ := ts.app.Skills.List(ctx)
	if len(skills) != 1 {
		t.Fatalf("skills = %+v", skills)
	}

	res = ts.post(c, "/admin/skills", url.Values{"name": {""}, "color": {"bg-blue-500"}})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("empty name status = %d, want 400", res.StatusCode)
	}

	res = ts.post(c, "/admin/skills/"+skills[0].ID+"/delete", url.Values{})
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Errorf("delete status = %d", res.StatusCode)
	}
	if skills, _ := ts.app.Skills.List(ctx); len(skills) != 0 {
		t.Errorf("skills after delete = %+v", skills)
	}
}

func TestAboutEditor(t *testing.T) {
	ts := newTestSite(t)
	c := ts.admin()

	res := ts.post(c, "/admin/about", url.Values{"title": {"Hi"}, "action": {"add_statistic"}})
	html := body(t, res)
	if res.StatusCode != http.StatusOK || !strings.Contains(html, `name="statistic_percentage"`) {
		t.Fatalf("add_statistic did not render a new row (status %d)", res.StatusCode)
	}
	if about, _ := ts.app.About.Load(context.Background()); about.Title != "" {
		t.Fatal("adding a row stored the draft")
	}

	res = ts.post(c, "/admin/about", url.Values{
		"title":                {"Hi"},
		"statistic_name":       {"Go"},
		"statistic_percentage": {"150"},
		"action":               {"save"},
	})
	html = body(t, res)
	if res.StatusCode != http.StatusBadRequest || !strings.Contains(html, "must be at most 100") {
		t.Fatalf("out of range percentage accepted (status %d)", res.StatusCode)
	}

	form := url.Values{
		"title":                {"Hi"},
		"description":          {"**Gopher**"},
		"experience_title":     {"Dev", "Lead"},
		"experience_period":    {"2020", "2023"},
		"statistic_name":       {"Go"},
		"statistic_percentage": {"90"},
		"action":               {"save"},
	}
	res = ts.post(c, "/admin/about", form)
	body(t, res)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("save without confirm = %d, want confirmation page", res.StatusCode)
	}

	form.Set("confirm", "yes")
	res = ts.post(c, "/admin/about", form)
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("confirmed save = %d", res.StatusCode)
	}

	about, err := ts.app.About.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if about.Title != "Hi" || len(about.Experience) != 2 || about.Experience[1].Title != "Lead" || about.Statistics[0].Percentage != 90 {
		t.Errorf("saved about = %+v", about)
	}

	res = ts.post(c, "/admin/about", url.Values{"action": {"remove_experience:5"}})
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("out of range remove = %d, want 400", res.StatusCode)
	}
}

func TestMessages(t *testing.T) {
	ts := newTestSite(t)
	c := ts.admin()
	ctx := context.Background()

	msg, err := ts.app.Messages.Add(ctx, domain.ContactInput{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"})
	if err != nil {
		t.Fatal(err)
	}

	html := body(t, ts.get(c, "/admin/messages"))
	if !strings.Contains(html, "Ada") {
		t.Error("message not listed")
	}

	res := ts.post(c, "/admin/messages/"+msg.ID+"/read", url.Values{})
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("toggle status = %d", res.StatusCode)
	}
	messages, _ := ts.app.Messages.List(ctx)
	if !messages[0].Read {
		t.Error("message not marked read")
	}

	res = ts.post(c, "/admin/messages/"+msg.ID+"/delete", url.Values{"confirm": {"yes"}})
	res.Body.Close()
	if messages, _ := ts.app.Messages.List(ctx); len(messages) != 0 {
		t.Errorf("messages after delete = %+v", messages)
	}
}

func TestToggleTheme(t *testing.T) {
	ts := newTestSite(t)

	req, _ := http.NewRequest(http.MethodPost, ts.srv.URL+"/theme", nil)
	req.Header.Set("Referer", ts.srv.URL+"/admin/projects?page=2")
	res, err := ts.client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if got := res.Header.Get("Location"); got != "/admin/projects?page=2" {
		t.Errorf("Location = %q", got)
	}
	if theme, _ := ts.app.Theme.Get(context.Background()); theme != "dark" {
		t.Errorf("theme = %q, want dark", theme)
	}
}

// openEvents connects to the change stream and returns its data lines.
func openEvents(t *testing.T, ts *testSite) <-chan string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, ts.srv.URL+"/events", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusOK || !strings.HasPrefix(res.Header.Get("Content-Type"), "text/event-stream") {
		t.Fatalf("events = %d %q", res.StatusCode, res.Header.Get("Content-Type"))
	}

	lines := make(chan string, 16)
	go func() {
		defer res.Body.Close()
		defer close(lines)
		scanner := bufio.NewScanner(res.Body)
		for scanner.Scan() {
			if data, ok := strings.CutPrefix(scanner.Text(), "data:"); ok {
				lines <- data
			}
		}
	}()
	return lines
}

func TestEventsStream(t *testing.T) {
	ts := newTestSite(t)
	events := openEvents(t, ts)

	res := ts.post(ts.client(), "/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Hello"},
		"message": {"Nice site"},
	})
	body(t, res)
	res = ts.post(ts.client(), "/theme", url.Values{})
	res.Body.Close()

	if _, err := ts.app.Skills.Add(context.Background(), domain.SkillInput{Name: "Go", Color: "bg-blue-500"}); err != nil {
		t.Fatal(err)
	}

	// changes arrive in order, so a message or theme event would come first
	select {
	case key := <-events:
		if key != "portfolio_skills" {
			t.Fatalf("first event = %q, want portfolio_skills", key)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change event received")
	}
}

func TestLocalReferer(t *testing.T) {
	tests := []struct {
		referer string
		want    string
	}{
		{"", "/"},
		{"http://localhost/admin/projects", "/admin/projects"},
		{"http://localhost/admin/projects?q=go&page=2", "/admin/projects?q=go&page=2"},
		{"http://evil.example//evil.example/x", "/"},
		{"not a url%", "/"},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/theme", nil)
		c.Request.Header.Set("Referer", tt.referer)
		if got := localReferer(c, "/"); got != tt.want {
			t.Errorf("localReferer(%q) = %q, want %q", tt.referer, got, tt.want)
		}
	}
}

func TestSortFields(t *testing.T) {
	fields := []hiddenField{
		{"statistic_name", "Go"},
		{"action", "save"},
		{"statistic_name", "SQL"},
		{"experience_title", "Dev"},
		{"statistic_name", "Rust"},
	}
	sortFields(fields)

	var got []string
	for _, f := range fields {
		got = append(got, f.Name+"="+f.Value)
	}
	want := "action=save experience_title=Dev statistic_name=Go statistic_name=SQL statistic_name=Rust"
	if strings.Join(got, " ") != want {
		t.Errorf("sortFields = %v", got)
	}
}

func TestPageAndSortURLs(t *testing.T) {
	values := url.Values{"q": {"go"}, "page": {"2"}}

	if got := pageURL(values, "page", 3); got != "?page=3&q=go" {
		t.Errorf("pageURL page = %q", got)
	}
	if got := pageURL(values, "status", "Active"); got != "?q=go&status=Active" {
		t.Errorf("pageURL filter = %q", got)
	}
	if values.Get("page") != "2" {
		t.Error("pageURL modified its input")
	}

	if got := sortURL(values, "title", "date", true); got != "?dir=asc&q=go&sort=title" {
		t.Errorf("sortURL new column = %q", got)
	}
	if got := sortURL(values, "title", "title", false); got != "?dir=desc&q=go&sort=title" {
		t.Errorf("sortURL active column = %q", got)
	}
}

func TestImageURL(t *testing.T) {
	tests := map[string]string{
		"data:image/png;base64,AAAA": "data:image/png;base64,AAAA",
		"https://example.com/a.png":  "https://example.com/a.png",
		"javascript:alert(1)":        "",
		"data:text/html,<b>x</b>":    "",
		"":                           "",
	}
	for src, want := range tests {
		if got := string(imageURL(src)); got != want {
			t.Errorf("imageURL(%q) = %q, want %q", src, got, want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	got := string(renderMarkdown("# Hi\n\n**bold** <script>x</script>"))
	if !strings.Contains(got, "<strong>bold</strong>") || !strings.Contains(got, `<h1 id="hi">`) {
		t.Errorf("renderMarkdown = %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Error("raw HTML was not dropped")
	}
}
