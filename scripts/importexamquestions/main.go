package main

import (
	"encoding/csv"
	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"log"
	"os"
	"strconv"
	"strings"
)

// Imports exam questions from a CSV with columns:
// version,question_number,question_text,option_a,option_b,option_c,option_d,correct_answer
func main() {
	config.LoadConfig()
	database.ConnectDb()

	path := "ExamQuestions.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	versionCache := make(map[int]uint)
	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		versionNumber := parseInt(getField(row, headerIndex, "version"))
		questionNumber := parseInt(getField(row, headerIndex, "question_number"))
		questionText := getField(row, headerIndex, "question_text")
		correctAnswer := strings.ToUpper(getField(row, headerIndex, "correct_answer"))

		if versionNumber == 0 || questionText == "" || !strings.Contains("ABCD", correctAnswer) || len(correctAnswer) != 1 {
			skipped++
			continue
		}

		versionID, ok := versionCache[versionNumber]
		if !ok {
			var version courseModels.ExamVersion
			result := database.Database.Db.Where("version_number = ?", versionNumber).First(&version)
			if result.Error != nil {
				version = courseModels.ExamVersion{
					VersionNumber: versionNumber,
					Title:         "Exam Version " + strconv.Itoa(versionNumber),
				}
				if err := database.Database.Db.Create(&version).Error; err != nil {
					log.Fatalf("Error creating exam version %d: %v", versionNumber, err)
				}
			}
			versionID = version.ID
			versionCache[versionNumber] = versionID
		}

		question := courseModels.ExamQuestion{
			VersionID:      versionID,
			QuestionNumber: questionNumber,
			QuestionText:   questionText,
			OptionA:        getField(row, headerIndex, "option_a"),
			OptionB:        getField(row, headerIndex, "option_b"),
			OptionC:        getField(row, headerIndex, "option_c"),
			OptionD:        getField(row, headerIndex, "option_d"),
			CorrectAnswer:  correctAnswer,
		}

		var existing courseModels.ExamQuestion
		result := database.Database.Db.
			Where("version_id = ? AND question_number = ?", versionID, questionNumber).
			First(&existing)

		if result.Error != nil {
			if err := database.Database.Db.Create(&question).Error; err != nil {
				log.Printf("Error inserting question %d (version=%d): %v", questionNumber, versionNumber, err)
				continue
			}
			inserted++
		} else {
			existing.QuestionText = question.QuestionText
			existing.OptionA = question.OptionA
			existing.OptionB = question.OptionB
			existing.OptionC = question.OptionC
			existing.OptionD = question.OptionD
			existing.CorrectAnswer = question.CorrectAnswer

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating question %d (version=%d): %v", questionNumber, versionNumber, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
	log.Printf("Total processed: %d", inserted+updated+skipped)
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func parseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
