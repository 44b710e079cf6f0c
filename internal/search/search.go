package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/chat-wrapped/internal/index"
)

type Result struct {
	ConvKey   string
	Seq       int
	Ts        string
	Title     string
	Snippet   string
	Role      string
	Recipient string
	Model     string
	Rank      float64
}

type Options struct {
	Query string
	Role  string // "" = all, "user", "assistant"
	Since string // "" = no filter, e.g. "2025-03-01"
	Until string // exclusive upper bound, same format as Since
	Limit int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph
// or kana; unicode61 does not split those into words.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := indexFold(runes, qRunes)
	if runePos < 0 || len(qRunes) == 0 {
		if len(runes) > contextChars*2 {
			return string(runes[:contextChars*2]) + "..."
		}
		return text
	}

	start := max(runePos-contextChars, 0)
	end := min(runePos+len(qRunes)+contextChars, len(runes))
	prefix, suffix := "", ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// indexFold is a case-insensitive rune index; lowering the whole string
// first can shift byte offsets.
func indexFold(text, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(sub) <= len(text); i++ {
		for j, r := range sub {
			if unicode.ToLower(text[i+j]) != unicode.ToLower(r) {
				continue outer
			}
		}
		return i
	}
	return -1
}

// Search returns at most one hit per conversation, best first.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if strings.TrimSpace(opts.Query) == "" {
		return nil, nil
	}
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	// Fetch more results before dedup so we still have enough after
	origLimit := opts.Limit
	opts.Limit = origLimit * 3

	var results []Result
	var err error
	if containsCJK(opts.Query) {
		results, err = searchLike(db, opts)
	} else {
		results, err = searchFTS(db, opts)
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var deduped []Result
	for _, r := range results {
		if seen[r.ConvKey] {
			continue
		}
		seen[r.ConvKey] = true
		deduped = append(deduped, r)
		if len(deduped) >= origLimit {
			break
		}
	}
	return deduped, nil
}

// filters returns the shared WHERE conditions after the match condition.
func filters(opts Options) ([]string, []any) {
	var conditions []string
	var args []any
	if opts.Role != "" {
		conditions = append(conditions, "m.role = ?")
		args = append(args, opts.Role)
	}
	if opts.Since != "" {
		conditions = append(conditions, "m.ts >= ?")
		args = append(args, opts.Since)
	}
	if opts.Until != "" {
		conditions = append(conditions, "m.ts < ?")
		args = append(args, opts.Until)
	}
	return conditions, args
}

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"messages_fts MATCH ?"}
	args := []any{ftsQuery(opts.Query)}
	more, moreArgs := filters(opts)
	conditions = append(conditions, more...)
	args = append(args, moreArgs...)

	query := fmt.Sprintf(`
		SELECT
			m.conv_key,
			m.seq,
			m.ts,
			c.title,
			snippet(messages_fts, 0, '>>>','<<<', '...', 40) as snip,
			m.role,
			m.recipient,
			m.model,
			bm25(messages_fts, 1.0) as rank
		FROM messages_fts
		JOIN messages m ON messages_fts.rowid = m.rowid
		JOIN conversations c ON m.conv_key = c.conv_key
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// ftsQuery quotes every bare term so punctuation in user input ("c++",
// "gpt-4o") is not parsed as FTS5 syntax. Operators pass through.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		switch t {
		case "AND", "OR", "NOT":
			continue
		}
		if strings.HasPrefix(t, `"`) && strings.HasSuffix(t, `"`) && len(t) > 1 {
			continue
		}
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions := []string{"m.text LIKE ?"}
	args := []any{"%" + opts.Query + "%"}
	more, moreArgs := filters(opts)
	conditions = append(conditions, more...)
	args = append(args, moreArgs...)

	query := fmt.Sprintf(`
		SELECT
			m.conv_key,
			m.seq,
			m.ts,
			c.title,
			m.text,
			m.role,
			m.recipient,
			m.model
		FROM messages m
		JOIN conversations c ON m.conv_key = c.conv_key
		WHERE %s
		ORDER BY m.ts DESC, m.seq
		LIMIT ?
	`, strings.Join(conditions, " AND "))
	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(&r.ConvKey, &r.Seq, &r.Ts, &r.Title, &fullText, &r.Role, &r.Recipient, &r.Model); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.ConvKey, &r.Seq, &r.Ts, &r.Title,
			&r.Snippet, &r.Role, &r.Recipient, &r.Model, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListAll returns every conversation, newest first, with its opening
// message as the snippet and the first model that answered. A Role keeps
// conversations with at least one message from that role. Limit 0 means no
// limit.
func ListAll(db *index.DB, opts Options) ([]Result, error) {
	var conditions []string
	var args []any
	if opts.Since != "" {
		conditions = append(conditions, "c.created_at >= ?")
		args = append(args, opts.Since)
	}
	if opts.Until != "" {
		conditions = append(conditions, "c.created_at < ?")
		args = append(args, opts.Until)
	}
	if opts.Role != "" {
		conditions = append(conditions, "EXISTS (SELECT 1 FROM messages r WHERE r.conv_key = c.conv_key AND r.role = ?)")
		args = append(args, opts.Role)
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT
			c.conv_key,
			c.created_at,
			c.title,
			COALESCE(m.text, ''),
			COALESCE(m.role, ''),
			COALESCE((SELECT a.model FROM messages a
				WHERE a.conv_key = c.conv_key AND a.model != ''
				ORDER BY a.seq LIMIT 1), '')
		FROM conversations c
		LEFT JOIN messages m ON m.conv_key = c.conv_key AND m.seq = 0
		%s
		ORDER BY c.created_at DESC, c.conv_key
	`, where)
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var text string
		if err := rows.Scan(&r.ConvKey, &r.Ts, &r.Title, &text, &r.Role, &r.Model); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(text, "", 60)
		results = append(results, r)
	}
	return results, rows.Err()
}
