package domain

// ViewStatus состояние сессии с точки зрения клиента
type ViewStatus string

const (
	ViewIdle    ViewStatus = "idle"
	ViewLoading ViewStatus = "loading"
	ViewReady   ViewStatus = "ready"
	ViewFailed  ViewStatus = "failed"
)

// ViewState неизменяемый снимок. Меняется только через Reduce
type ViewState struct {
	Status ViewStatus     `json:"status"`
	Token  string         `json:"token,omitempty"`
	Chart  *ChartResponse `json:"chart,omitempty"`
	// ErrorCode один из Failure*, текст исходной ошибки в состояние не попадает
	ErrorCode string `json:"errorCode,omitempty"`
}

// ViewMessage одно событие прогона пайплайна
type ViewMessage interface {
	viewMessage()
}

// ChartSubmitted новый прогон, его токен становится текущим
type ChartSubmitted struct {
	Token string
}

// ChartCompleted прогон успешно завершён
type ChartCompleted struct {
	Token string
	Chart *ChartResponse
}

// ChartFailed прогон завершён ошибкой, Code из FailureCode
type ChartFailed struct {
	Token string
	Code  string
}

func (ChartSubmitted) viewMessage() {}
func (ChartCompleted) viewMessage() {}
func (ChartFailed) viewMessage()    {}

// Reduce чистая функция перехода. Результаты с устаревшим токеном игнорируются
func Reduce(state ViewState, msg ViewMessage) ViewState {
	switch m := msg.(type) {
	case ChartSubmitted:
		return ViewState{Status: ViewLoading, Token: m.Token, Chart: state.Chart}
	case ChartCompleted:
		if m.Token != state.Token {
			return state
		}
		return ViewState{Status: ViewReady, Token: m.Token, Chart: m.Chart}
	case ChartFailed:
		if m.Token != state.Token {
			return state
		}
		return ViewState{Status: ViewFailed, Token: m.Token, ErrorCode: m.Code}
	default:
		return state
	}
}
