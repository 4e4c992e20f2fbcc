package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case Game:
		o.printGame(v)
	case IngestReport:
		o.printIngestReport(v)
	case Page[Player]:
		o.printPlayerPage(v)
	case Page[Game]:
		o.printGamePage(v)
	case Page[TimeControl]:
		o.printTimeControlPage(v)
	case Page[Opening]:
		o.printOpeningPage(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID     string `json:"id"`
	Rating int    `json:"rating"`
}

// TimeControl response type
type TimeControl struct {
	Code string `json:"code"`
}

// Opening response type
type Opening struct {
	Name string `json:"name"`
}

// Game response type
type Game struct {
	ID              string  `json:"id"`
	Rated           bool    `json:"rated"`
	CreatedAt       float64 `json:"created_at"`
	LastMoveAt      float64 `json:"last_move_at"`
	TurnCount       int     `json:"turns"`
	VictoryStatus   string  `json:"victory_status"`
	Winner          string  `json:"winner"`
	TimeControlCode string  `json:"time_control_code"`
	WhiteID         string  `json:"white_id"`
	BlackID         string  `json:"black_id"`
	Moves           string  `json:"moves"`
	OpeningName     string  `json:"opening_name"`
	OpeningPly      int     `json:"opening_ply"`
}

// Page response type
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// IngestReport response type
type IngestReport struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.ID)
	fmt.Printf("Rating: %d\n", p.Rating)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("White: %s  Black: %s\n", g.WhiteID, g.BlackID)
	fmt.Printf("Winner: %s (%s)\n", g.Winner, g.VictoryStatus)
	fmt.Printf("Time Control: %s\n", g.TimeControlCode)
	fmt.Printf("Opening: %s (ply %d)\n", g.OpeningName, g.OpeningPly)
	fmt.Printf("Turns: %d\n", g.TurnCount)
	if g.Rated {
		fmt.Println("Rated: yes")
	} else {
		fmt.Println("Rated: no")
	}
}

func (o *Output) printIngestReport(r IngestReport) {
	fmt.Printf("Processed: %d\n", r.Processed)
	fmt.Printf("Skipped: %d\n", r.Skipped)
	fmt.Printf("Failed: %d\n", r.Failed)
}

func pageFooter[T any](p Page[T]) string {
	return fmt.Sprintf("Page %d of %d (%d total)", p.Page, p.TotalPages, p.TotalItems)
}

func (o *Output) printPlayerPage(p Page[Player]) {
	for _, player := range p.Items {
		fmt.Printf("%-24s %d\n", player.ID, player.Rating)
	}
	fmt.Println(pageFooter(p))
}

func (o *Output) printGamePage(p Page[Game]) {
	for _, g := range p.Items {
		fmt.Printf("%-12s %s vs %s  winner=%s  %s\n", g.ID, g.WhiteID, g.BlackID, g.Winner, g.OpeningName)
	}
	fmt.Println(pageFooter(p))
}

func (o *Output) printTimeControlPage(p Page[TimeControl]) {
	for _, tc := range p.Items {
		fmt.Println(tc.Code)
	}
	fmt.Println(pageFooter(p))
}

func (o *Output) printOpeningPage(p Page[Opening]) {
	for _, opening := range p.Items {
		fmt.Println(opening.Name)
	}
	fmt.Println(pageFooter(p))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
