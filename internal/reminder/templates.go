package reminder

// Templates carries the pre-resolved reminder title and body strings for
// one locale. Bodies are fmt format strings taking the record title. The
// policy itself is locale-agnostic; callers pick a set with TemplatesFor.
type Templates struct {
	TaskTitle string
	TaskBody  string

	EventTitle string
	EventBody  string

	AppointmentTitle string
	AppointmentBody  string
}

var englishTemplates = Templates{
	TaskTitle: "Task Reminder",
	TaskBody:  "Your task %q is due soon.",

	EventTitle: "Event Reminder",
	EventBody:  "The event %q is about to start.",

	AppointmentTitle: "Appointment Reminder",
	AppointmentBody:  "You have an appointment coming up: %q.",
}

var frenchTemplates = Templates{
	TaskTitle: "Rappel de tâche",
	TaskBody:  "Votre tâche %q arrive à échéance.",

	EventTitle: "Rappel d'événement",
	EventBody:  "L'événement %q va bientôt commencer.",

	AppointmentTitle: "Rappel de rendez-vous",
	AppointmentBody:  "Vous avez un rendez-vous à venir : %q.",
}

// TemplatesFor returns the template set for the given locale code.
// Unknown locales fall back to English.
func TemplatesFor(locale string) Templates {
	if locale == "fr" {
		return frenchTemplates
	}
	return englishTemplates
}
