//nolint:revive // types is a standard Go package name pattern
package types

// SurveyItem is one scored questionnaire item.
type SurveyItem struct {
	ID    int      `json:"id"`
	Score *float64 `json:"score" validate:"required,min=0,max=3"`
}

// PHQ9Survey is the nine-item depression screen.
type PHQ9Survey struct {
	Questions []SurveyItem `json:"questions" validate:"required,len=9,dive"`
}

// GAD7Survey is the seven-item anxiety screen.
type GAD7Survey struct {
	Questions []SurveyItem `json:"questions" validate:"required,len=7,dive"`
}

// SleepSurvey captures sleep quality.
type SleepSurvey struct {
	QualityRating        *float64 `json:"qualityRating" validate:"required,min=1,max=10"`
	HoursPerNight        *float64 `json:"hoursPerNight" validate:"required,min=0,max=24"`
	TroubleFallingAsleep *float64 `json:"troubleFallingAsleep" validate:"required,min=0,max=3"`
	TroubleStayingAsleep *float64 `json:"troubleStayingAsleep" validate:"required,min=0,max=3"`
	FeelingRested        *float64 `json:"feelingRested" validate:"required,min=0,max=3"`
}

// SocialSurvey captures social connectedness.
type SocialSurvey struct {
	SocialInteractions *float64 `json:"socialInteractions" validate:"required,min=0,max=3"`
	FeelingConnected   *float64 `json:"feelingConnected" validate:"required,min=0,max=3"`
	SupportNetwork     *float64 `json:"supportNetwork" validate:"required,min=0,max=3"`
	Loneliness         *float64 `json:"loneliness" validate:"required,min=0,max=3"`
}
