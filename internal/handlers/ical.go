package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/martellev/mealplanner/internal/models"
	"github.com/martellev/mealplanner/internal/services"
)

type ICalHandler struct {
	planner *services.Planner
}

func NewICalHandler(planner *services.Planner) *ICalHandler {
	return &ICalHandler{planner: planner}
}

// Feed publishes every planned course as an all-day event.
func (handler *ICalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	meals, plans := handler.planner.Snapshot()
	slices.SortStableFunc(plans, func(a, b models.DayPlan) int {
		return a.Date.Compare(b.Date)
	})
	stamp := time.Now().UTC().Format("20060102T150405Z")

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=meal-planner.ics")

	var builder strings.Builder
	builder.WriteString("BEGIN:VCALENDAR\r\n")
	builder.WriteString("VERSION:2.0\r\n")
	builder.WriteString("PRODID:-//Meal Planner//Meal Planner//EN\r\n")
	builder.WriteString("CALSCALE:GREGORIAN\r\n")
	builder.WriteString("METHOD:PUBLISH\r\n")
	builder.WriteString("X-WR-CALNAME:Meal Planner\r\n")

	for _, plan := range plans {
		resolved := services.ResolvePlan(plan, meals)
		day := plan.Date.In(handler.planner.Location())

		for index, meal := range resolved.Meals() {
			if meal == nil {
				continue
			}
			course := models.Courses[index]

			builder.WriteString("BEGIN:VEVENT\r\n")
			builder.WriteString(fmt.Sprintf("UID:%s-%s@meal-planner\r\n", plan.ID, course))
			builder.WriteString(fmt.Sprintf("SUMMARY:[%s] %s\r\n", capitalizeFirst(string(course)), escapeICalText(meal.Name)))
			description := fmt.Sprintf("%d kcal", meal.Calories)
			if meal.BestServedAs != "" {
				description += "\n" + meal.BestServedAs
			}
			builder.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICalText(description)))
			builder.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", day.Format("20060102")))
			// All-day events end on the following day.
			builder.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", day.AddDate(0, 0, 1).Format("20060102")))
			builder.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
			builder.WriteString("END:VEVENT\r\n")
		}
	}

	builder.WriteString("END:VCALENDAR\r\n")

	w.Write([]byte(builder.String()))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func escapeICalText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ";", "\\;")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, "\n", "\\n")
	return text
}
