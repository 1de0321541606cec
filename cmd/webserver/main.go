package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"revizia"

	"github.com/gorilla/sessions"
)

// userState is the single user's session-scoped context: stats, courses and
// the in-progress quiz all live here for the lifetime of the process. Handlers
// serialize access through mu; the core types themselves are not concurrent.
type userState struct {
	mu         sync.Mutex
	stats      revizia.UserStats
	quiz       *revizia.QuizSession
	lastResult *revizia.QuizResult
	preview    []revizia.Question
	client     revizia.TextGenerator
}

type answerFeedback struct {
	Correct      bool
	Question     revizia.Question
	ChosenOption int
	QuizComplete bool
}

type leaderboardEntry struct {
	Name   string
	Points int
	Rank   revizia.Rank
}

type Server struct {
	cfg       revizia.Config
	store     *revizia.Store
	sessions  *sessions.CookieStore
	templates map[string]*template.Template
	state     *userState
}

func main() {
	cfg := revizia.LoadConfig()
	revizia.SetVerbose(cfg.Verbose)

	store, err := revizia.OpenStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	if err := store.CreateTables(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "revizia-dev-secret"
	}

	server := &Server{
		cfg:       cfg,
		store:     store,
		sessions:  sessions.NewCookieStore([]byte(secret)),
		templates: loadTemplates(),
		state: &userState{
			stats:  revizia.NewUserStats("", cfg.DefaultLevel),
			client: cfg.NewTextGenerator(),
		},
	}

	http.HandleFunc("/", server.handleHome)
	http.HandleFunc("/profile", server.handleProfile)
	http.HandleFunc("/profile/reset", server.handleProfileReset)
	http.HandleFunc("/courses", server.handleCourses)
	http.HandleFunc("/courses/delete", server.handleCourseDelete)
	http.HandleFunc("/quiz/start", server.handleQuizStart)
	http.HandleFunc("/quiz", server.handleQuiz)
	http.HandleFunc("/quiz/answer", server.handleQuizAnswer)
	http.HandleFunc("/challenge", server.handleChallenge)
	http.HandleFunc("/stats", server.handleStats)
	http.HandleFunc("/settings", server.handleSettings)

	log.Printf("Starting server on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}

func loadTemplates() map[string]*template.Template {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"percent": func(score, total int) string {
			if total == 0 {
				return "0%"
			}
			return fmt.Sprintf("%.1f%%", float64(score)/float64(total)*100)
		},
		"printf": fmt.Sprintf,
	}

	templates := make(map[string]*template.Template)
	for _, name := range []string{"home", "quiz", "feedback", "stats", "settings"} {
		templates[name] = template.Must(
			template.New(name).Funcs(funcMap).ParseFiles(
				"templates/base.html",
				"templates/"+name+".html",
			))
	}
	return templates
}

func (s *Server) render(w http.ResponseWriter, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	s.state.mu.Lock()
	data["Stats"] = s.state.stats
	data["AIConfigured"] = s.state.client != nil
	s.state.mu.Unlock()

	if err := s.templates[name].ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Template error in %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) flash(w http.ResponseWriter, r *http.Request, msg string) {
	session, _ := s.sessions.Get(r, "revizia-session")
	session.AddFlash(msg)
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
}

func (s *Server) takeFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := s.sessions.Get(r, "revizia-session")
	var msgs []string
	for _, f := range session.Flashes() {
		if m, ok := f.(string); ok {
			msgs = append(msgs, m)
		}
	}
	if err := session.Save(r, w); err != nil {
		log.Printf("Session save error: %v", err)
	}
	return msgs
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	courses, err := s.store.GetCourses()
	if err != nil {
		log.Printf("Failed to get courses: %v", err)
		http.Error(w, "Failed to get courses", http.StatusInternalServerError)
		return
	}

	s.state.mu.Lock()
	preview := s.state.preview
	s.state.preview = nil
	s.state.mu.Unlock()

	s.render(w, "home", map[string]interface{}{
		"Courses":  courses,
		"Preview":  preview,
		"Messages": s.takeFlashes(w, r),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	level := r.FormValue("level")
	if name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}

	s.state.mu.Lock()
	s.state.stats.Name = name
	s.state.stats.Level = level
	s.state.mu.Unlock()

	s.flash(w, r, "Profile created")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleProfileReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.state.mu.Lock()
	name, level := s.state.stats.Name, s.state.stats.Level
	s.state.stats = revizia.NewUserStats(name, level)
	s.state.quiz = nil
	s.state.mu.Unlock()

	s.flash(w, r, "Profile reset")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	content := strings.TrimSpace(r.FormValue("content"))
	sourceType := r.FormValue("source_type")
	if sourceType == "" {
		sourceType = "text"
	}
	if title == "" || content == "" {
		http.Error(w, "Title and content are required", http.StatusBadRequest)
		return
	}

	course, err := s.store.AddCourse(revizia.Course{
		Title:      title,
		Content:    content,
		SourceType: sourceType,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		log.Printf("Failed to add course: %v", err)
		http.Error(w, "Failed to add course", http.StatusInternalServerError)
		return
	}

	s.state.mu.Lock()
	s.state.stats.CoursesUploaded++
	client := s.state.client
	s.state.mu.Unlock()

	// Preview quiz: two questions generated right away so the user sees what
	// a full quiz will look like. Only worth a network round trip when the AI
	// is configured.
	if client != nil {
		qg := revizia.NewQuizGenerator(client)
		preview, err := qg.GenerateQuiz(r.Context(), revizia.GenerationRequest{
			CourseText:   course.Content,
			NumQuestions: 2,
			Level:        s.levelForPrompt(),
		})
		if err == nil {
			s.state.mu.Lock()
			s.state.preview = preview
			s.state.mu.Unlock()
		}
	}

	s.flash(w, r, "Course imported")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCourseDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid course id", http.StatusBadRequest)
		return
	}
	if err := s.store.DeleteCourse(id); err != nil {
		log.Printf("Failed to delete course: %v", err)
		http.Error(w, "Failed to delete course", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) levelForPrompt() string {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if s.state.stats.Level != "" {
		return s.state.stats.Level
	}
	return s.cfg.DefaultLevel
}

func (s *Server) handleQuizStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	courseID, err := strconv.ParseInt(r.FormValue("course_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid course id", http.StatusBadRequest)
		return
	}
	numQuestions, err := strconv.Atoi(r.FormValue("num_questions"))
	if err != nil || numQuestions < 1 {
		numQuestions = s.cfg.DefaultQuestions
	}

	course, err := s.store.GetCourse(courseID)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.state.mu.Lock()
	client := s.state.client
	s.state.mu.Unlock()

	qg := revizia.NewQuizGenerator(client)
	if genlog, err := revizia.NewGenerationLog(s.cfg.LogDir, course.Title, revizia.GenerationRequest{
		CourseText:   course.Content,
		NumQuestions: numQuestions,
	}); err == nil {
		qg.SetLogger(genlog)
		defer genlog.Close()
	}

	questions, err := qg.GenerateQuiz(r.Context(), revizia.GenerationRequest{
		CourseText:   course.Content,
		NumQuestions: numQuestions,
		Level:        s.levelForPrompt(),
	})
	if err != nil {
		log.Printf("Failed to generate quiz: %v", err)
		http.Error(w, "Failed to generate quiz", http.StatusInternalServerError)
		return
	}

	quiz, err := revizia.NewQuizSession(strconv.FormatInt(course.ID, 10), course.Title, questions)
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		http.Error(w, "Failed to create quiz session", http.StatusInternalServerError)
		return
	}

	s.state.mu.Lock()
	s.state.quiz = quiz
	s.state.lastResult = nil
	s.state.mu.Unlock()

	s.flash(w, r, fmt.Sprintf("Quiz with %d questions generated", len(questions)))
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

func (s *Server) handleChallenge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	quiz, err := revizia.NewQuizSession(revizia.ChallengeCourseID, "Quiz Challenge", revizia.ChallengeQuestions())
	if err != nil {
		http.Error(w, "Failed to start challenge", http.StatusInternalServerError)
		return
	}

	s.state.mu.Lock()
	s.state.quiz = quiz
	s.state.lastResult = nil
	s.state.mu.Unlock()

	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	s.state.mu.Lock()
	quiz := s.state.quiz
	s.state.mu.Unlock()

	if quiz == nil {
		s.render(w, "quiz", map[string]interface{}{
			"NoQuiz":   true,
			"Messages": s.takeFlashes(w, r),
		})
		return
	}

	question, err := quiz.CurrentQuestion()
	if err != nil {
		// Complete session still displayed: final score only.
		s.render(w, "quiz", map[string]interface{}{
			"Complete": true,
			"Score":    quiz.Score(),
			"Total":    quiz.Total(),
		})
		return
	}

	s.render(w, "quiz", map[string]interface{}{
		"Question":    question,
		"QuestionNum": quiz.AnsweredCount() + 1,
		"Total":       quiz.Total(),
		"CourseTitle": quiz.CourseTitle(),
		"Messages":    s.takeFlashes(w, r),
	})
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	choice, err := strconv.Atoi(r.FormValue("choice"))
	if err != nil || choice < 0 || choice > 3 {
		http.Error(w, "Invalid answer", http.StatusBadRequest)
		return
	}

	s.state.mu.Lock()
	defer s.state.mu.Unlock()

	quiz := s.state.quiz
	if quiz == nil {
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	}

	question, err := quiz.CurrentQuestion()
	if err != nil {
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	}

	correct, err := quiz.SubmitAnswer(choice)
	if err != nil {
		http.Error(w, "Invalid answer", http.StatusBadRequest)
		return
	}

	feedback := &answerFeedback{
		Correct:      correct,
		Question:     question,
		ChosenOption: choice,
		QuizComplete: quiz.Complete(),
	}

	if quiz.Complete() {
		// The session just turned terminal: fold the score into the user
		// stats and append the history record, exactly once.
		now := time.Now()
		s.state.stats = revizia.ApplyResult(s.state.stats, quiz.Score(), quiz.Total(), now)

		result, err := quiz.Result(now)
		if err == nil {
			if err := s.store.AddResult(result); err != nil {
				log.Printf("Failed to record quiz result: %v", err)
			}
			s.state.lastResult = &result
		}
		s.state.quiz = nil
	}

	lastResult := s.state.lastResult

	data := map[string]interface{}{
		"Feedback": feedback,
		"Stats":    s.state.stats,
	}
	if feedback.QuizComplete && lastResult != nil {
		data["Result"] = lastResult
	}
	data["AIConfigured"] = s.state.client != nil

	if err := s.templates["feedback"].ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Template error in feedback: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	results, err := s.store.GetResults()
	if err != nil {
		log.Printf("Failed to get results: %v", err)
		http.Error(w, "Failed to get results", http.StatusInternalServerError)
		return
	}

	s.render(w, "stats", map[string]interface{}{
		"Results":     results,
		"Leaderboard": s.leaderboard(),
	})
}

// leaderboard mixes fixed sample players with the current user, sorted by
// points. Purely a display feature; there is no multi-user backend.
func (s *Server) leaderboard() []leaderboardEntry {
	s.state.mu.Lock()
	name := s.state.stats.Name
	if name == "" {
		name = "You"
	}
	entries := []leaderboardEntry{
		{"Aminata D.", 1250, revizia.RankForPoints(1250)},
		{"Mamadou S.", 980, revizia.RankForPoints(980)},
		{name, s.state.stats.Points, s.state.stats.Rank},
		{"Fatou M.", 750, revizia.RankForPoints(750)},
		{"Ousmane T.", 420, revizia.RankForPoints(420)},
	}
	s.state.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, "settings", map[string]interface{}{
			"Provider": s.cfg.AIProvider,
			"Messages": s.takeFlashes(w, r),
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	apiKey := strings.TrimSpace(r.FormValue("api_key"))
	if apiKey == "" {
		s.state.mu.Lock()
		s.state.client = nil
		s.state.mu.Unlock()
		s.flash(w, r, "AI disabled, quizzes will use the local question bank")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	var client revizia.TextGenerator
	var valid bool
	switch s.cfg.AIProvider {
	case "openai":
		c := revizia.NewOpenAIClient(apiKey)
		valid = c.ValidateCredential(r.Context())
		client = c
	default:
		c := revizia.NewGeminiClient(apiKey)
		valid = c.ValidateCredential(r.Context())
		client = c
	}

	if !valid {
		s.flash(w, r, "API key rejected by the AI service")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	s.state.mu.Lock()
	s.state.client = client
	s.state.mu.Unlock()

	s.flash(w, r, "AI configured")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
