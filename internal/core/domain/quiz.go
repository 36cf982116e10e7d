package domain

import "errors"

var (
	ErrThemeNotFound  = errors.New("theme not found")
	ErrThemeExists    = errors.New("theme already exists")
	ErrQuestionExists = errors.New("question already exists")
)

// Theme groups questions under a unique title.
type Theme struct {
	ID    int    `json:"id" bson:"_id"`
	Title string `json:"title" bson:"title"`
}

// Answer is one option of a question. It has no identity of its own.
type Answer struct {
	Title     string `json:"title" bson:"title"`
	IsCorrect bool   `json:"is_correct" bson:"is_correct"`
}

// Question is immutable once created; Answers keep the order they were submitted in.
type Question struct {
	ID      int      `json:"id" bson:"_id"`
	Title   string   `json:"title" bson:"title"`
	ThemeID int      `json:"theme_id" bson:"theme_id"`
	Answers []Answer `json:"answers" bson:"answers"`
}
