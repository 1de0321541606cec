package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"revizia"
)

func main() {
	var (
		courseFile   = flag.String("course", "", "Path to a text file with the course material (required unless -challenge)")
		title        = flag.String("title", "Course", "Course title shown in results")
		numQuestions = flag.Int("questions", 5, "Number of questions to generate")
		level        = flag.String("level", "Terminale", "Education level (Seconde, Première, Terminale)")
		outputFile   = flag.String("output", "", "Write quiz JSON to a file instead of playing")
		challenge    = flag.Bool("challenge", false, "Play the built-in challenge quiz")
		seed         = flag.Int64("seed", 0, "Seed for fallback question selection (0 = random)")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)

	flag.Parse()
	revizia.SetVerbose(*verbose)

	cfg := revizia.LoadConfig()

	if *challenge {
		playQuiz(revizia.ChallengeCourseID, "Quiz Challenge", revizia.ChallengeQuestions())
		return
	}

	if *courseFile == "" {
		log.Fatal("Course file is required. Use -course flag (or -challenge).")
	}

	content, err := os.ReadFile(*courseFile)
	if err != nil {
		log.Fatalf("Failed to read course file: %v", err)
	}

	generator := revizia.NewQuizGenerator(cfg.NewTextGenerator())
	if *seed != 0 {
		generator.SetFallbackBank(revizia.NewSeededFallbackBank(*seed))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	questions, err := generator.GenerateQuiz(ctx, revizia.GenerationRequest{
		CourseText:   string(content),
		NumQuestions: *numQuestions,
		Level:        *level,
	})
	if err != nil {
		log.Fatalf("Failed to generate quiz: %v", err)
	}

	if *outputFile != "" {
		output, err := json.MarshalIndent(questions, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal quiz: %v", err)
		}
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Quiz saved to: %s", *outputFile)
		return
	}

	playQuiz(*title, *title, questions)
}

func playQuiz(sourceID, title string, questions []revizia.Question) {
	session, err := revizia.NewQuizSession(sourceID, title, questions)
	if err != nil {
		log.Fatalf("Failed to create quiz session: %v", err)
	}

	fmt.Printf("🎯 Starting quiz: %s (%d questions)\n\n", title, session.Total())

	scanner := bufio.NewScanner(os.Stdin)
	letters := []string{"A", "B", "C", "D"}

	for !session.Complete() {
		question, err := session.CurrentQuestion()
		if err != nil {
			log.Fatalf("Failed to read question: %v", err)
		}

		fmt.Printf("Question %d/%d:\n%s\n\n", session.AnsweredCount()+1, session.Total(), question.Text)
		for i, option := range question.Options {
			fmt.Printf("%s) %s\n", letters[i], option)
		}
		fmt.Println()

		var choice int
		for {
			fmt.Print("Your answer (A/B/C/D): ")
			scanner.Scan()
			answer := strings.ToUpper(strings.TrimSpace(scanner.Text()))
			if idx := strings.Index("ABCD", answer); idx >= 0 && len(answer) == 1 {
				choice = idx
				break
			}
			fmt.Println("Please enter A, B, C, or D")
		}

		correct, err := session.SubmitAnswer(choice)
		if err != nil {
			log.Fatalf("Failed to submit answer: %v", err)
		}

		if correct {
			fmt.Println("✅ Correct!")
		} else {
			fmt.Printf("❌ Incorrect. The correct answer is %s) %s\n",
				letters[question.CorrectAnswer], question.Options[question.CorrectAnswer])
		}
		if question.Explanation != "" {
			fmt.Printf("💡 Explanation: %s\n", question.Explanation)
		}
		fmt.Println()
		fmt.Println(strings.Repeat("─", 50))
		fmt.Println()
	}

	score, total := session.Score(), session.Total()
	percentage := float64(score) / float64(total) * 100
	fmt.Printf("🎉 Quiz completed! Score: %d/%d (%.1f%%)\n", score, total, percentage)

	stats := revizia.ApplyResult(revizia.NewUserStats("", ""), score, total, time.Now())
	fmt.Printf("⭐ Points earned: %d · Rank at this level: %s\n", stats.Points, stats.Rank)

	switch {
	case percentage >= 80:
		fmt.Println("🌟 Excellent work!")
	case percentage >= 60:
		fmt.Println("👍 Good job!")
	default:
		fmt.Println("📚 Keep studying!")
	}
}
