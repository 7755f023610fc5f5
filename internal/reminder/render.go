package reminder

import (
	"bytes"
	"html/template"
	"time"
)

const Subject = "Stride — Tasks due in 24 hours"

const deadlineLayout = "Mon, 02 Jan 2006 15:04 MST"

var mailTemplate = template.Must(template.New("reminder").Parse(`<p>Hi {{.Name}},</p>
<p>You have upcoming tasks due within 24 hours:</p>
<ul>{{range .Tasks}}<li>{{.Title}} — due: {{.Due}}</li>{{end}}</ul>
<p>— Stride</p>
`))

type mailItem struct {
	Title string
	Due   string
}

type mailData struct {
	Name  string
	Tasks []mailItem
}

// RenderHTML builds the reminder body. Titles and names are escaped.
func RenderHTML(r UserReminders, loc *time.Location) (string, error) {
	data := mailData{Name: r.Name, Tasks: make([]mailItem, len(r.Tasks))}
	for i, t := range r.Tasks {
		data.Tasks[i] = mailItem{Title: t.Title, Due: formatDeadline(t.Deadline, loc)}
	}

	var buf bytes.Buffer
	if err := mailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatDeadline(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(deadlineLayout)
}
