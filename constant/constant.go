package constant

type VideoStatus string

const (
	VideoStatusUploading  VideoStatus = "uploading"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusReady      VideoStatus = "ready"
	VideoStatusFailed     VideoStatus = "failed"
)

func (s VideoStatus) String() string {
	return string(s)
}

// Terminal reports whether the backend will no longer change the status.
func (s VideoStatus) Terminal() bool {
	return s == VideoStatusReady || s == VideoStatusFailed
}

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusLive      SessionStatus = "live"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) String() string {
	return string(s)
}

type RecordingStatus string

const (
	RecordingStatusNotStarted RecordingStatus = "NOT_STARTED"
	RecordingStatusRecording  RecordingStatus = "RECORDING"
	RecordingStatusUploaded   RecordingStatus = "UPLOADED"
	RecordingStatusProcessing RecordingStatus = "PROCESSING"
	RecordingStatusCompleted  RecordingStatus = "COMPLETED"
	RecordingStatusFailed     RecordingStatus = "FAILED"
)

func (s RecordingStatus) String() string {
	return string(s)
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCanceled   PaymentStatus = "canceled"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusFailed || s == PaymentStatusCanceled
}

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCrypto       PaymentMethod = "crypto"
)

func (m PaymentMethod) String() string {
	return string(m)
}

type LessonType string

const (
	LessonTypeVideo   LessonType = "video"
	LessonTypeArticle LessonType = "article"
	LessonTypeQuiz    LessonType = "quiz"
)

func (t LessonType) String() string {
	return string(t)
}

type PlayerState string

const (
	PlayerStateIdle      PlayerState = "idle"
	PlayerStateLoading   PlayerState = "loading"
	PlayerStateReady     PlayerState = "ready"
	PlayerStatePlaying   PlayerState = "playing"
	PlayerStatePaused    PlayerState = "paused"
	PlayerStateBuffering PlayerState = "buffering"
	PlayerStateEnded     PlayerState = "ended"
)

func (s PlayerState) String() string {
	return string(s)
}

type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
	EnvironmentDevelop    Environment = "develop"
)

func (e Environment) String() string {
	return string(e)
}
