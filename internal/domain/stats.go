package domain

// Производные агрегаты. Не хранятся в БД, считаются по запросу.

type CategoryProgress struct {
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
	Color    string  `json:"color"`
}

type UserStats struct {
	CompletedCourses   int                `json:"completedCourses"`
	TotalMinutes       float64            `json:"totalMinutes"`
	TotalProgress      float64            `json:"totalProgress"`
	CategoriesProgress []CategoryProgress `json:"categoriesProgress"`
}

// Три независимых списка, каждый не длиннее четырёх видео.
// Видео может встречаться в нескольких списках — дедупликации нет.
type RecommendationSet struct {
	BasedOnHistory  []Video `json:"basedOnHistory"`
	BasedOnProgress []Video `json:"basedOnProgress"`
	Trending        []Video `json:"trending"`
}
