package i18n

import (
	"shift-manager/internal/models"
)

// Static message table, English and Dutch. Lookup falls back to English,
// then to the key itself so a missing entry is visible rather than blank.

type Key string

const (
	Welcome            Key = "welcome"
	Help               Key = "help"
	NoShifts           Key = "no_shifts"
	ShiftList          Key = "shift_list"
	ShiftAdded         Key = "shift_added"
	ShiftUpdated       Key = "shift_updated"
	ShiftDeleted       Key = "shift_deleted"
	ShiftNotFound      Key = "shift_not_found"
	ShiftAssigned      Key = "shift_assigned"
	ShiftUnassigned    Key = "shift_unassigned"
	NothingOnDate      Key = "nothing_on_date"
	NoCalendarForShift Key = "no_calendar_for_shift"
	AccessDenied       Key = "access_denied"
	SyncDone           Key = "sync_done"
	SyncFailed         Key = "sync_failed"
	CalendarList       Key = "calendar_list"
	CalendarSelected   Key = "calendar_selected"
	LanguageSet        Key = "language_set"
	NotificationsOn    Key = "notifications_on"
	NotificationsOff   Key = "notifications_off"
	BadDate            Key = "bad_date"
	BadArguments       Key = "bad_arguments"
	UnknownCommand     Key = "unknown_command"
	OperationFailed    Key = "operation_failed"
	MonthEmpty         Key = "month_empty"
	MonthHeader        Key = "month_header"
)

var english = map[Key]string{
	Welcome:            "👋 Shift manager ready. Use /help for the command list.",
	Help:               "Commands:\n/shifts - list shift templates\n/addshift <name> <HH:MM> <HH:MM> [#color] - add a shift\n/addshift <name> allday [#color] - add an all-day shift\n/updateshift <n> <name> <HH:MM> <HH:MM> [#color] - edit a shift\n/deleteshift <n> - delete a shift\n/assign <n> <yyyy-mm-dd> - put a shift on a date\n/unassign <yyyy-mm-dd> - clear a date\n/day <yyyy-mm-dd> - show a date\n/month [yyyy-mm] - show a month\n/sync - reload assignments from the calendar\n/calendars - list writable calendars\n/setcalendar <id> - choose the target calendar\n/language en|nl - switch language\n/notifications on|off [minutes] - notification settings",
	NoShifts:           "📭 No shifts configured. Add one with /addshift.",
	ShiftList:          "📋 Configured shifts:",
	ShiftAdded:         "✅ Shift added.",
	ShiftUpdated:       "✅ Shift updated.",
	ShiftDeleted:       "✅ Shift deleted.",
	ShiftNotFound:      "❌ No such shift.",
	ShiftAssigned:      "✅ Shift assigned.",
	ShiftUnassigned:    "✅ Date cleared.",
	NothingOnDate:      "📭 Nothing assigned on that date.",
	NoCalendarForShift: "⚠️ This shift has no target calendar. Set one with /setcalendar and re-save the shift.",
	AccessDenied:       "🚫 No calendar access.",
	SyncDone:           "🔄 Calendar sync complete.",
	SyncFailed:         "❌ Calendar sync failed: ",
	CalendarList:       "📅 Writable calendars:",
	CalendarSelected:   "✅ Target calendar set.",
	LanguageSet:        "✅ Language set to English.",
	NotificationsOn:    "🔔 Notifications enabled.",
	NotificationsOff:   "🔕 Notifications disabled.",
	BadDate:            "❌ Bad date. Use yyyy-mm-dd.",
	BadArguments:       "❌ Bad arguments. See /help.",
	UnknownCommand:     "❌ Unknown command. Use /help for the command list.",
	OperationFailed:    "❌ Operation failed: ",
	MonthEmpty:         "📭 No shifts in this month.",
	MonthHeader:        "📅 Shifts in ",
}

var dutch = map[Key]string{
	Welcome:            "👋 Shift manager klaar. Gebruik /help voor de commando's.",
	Help:               "Commando's:\n/shifts - diensten tonen\n/addshift <naam> <UU:MM> <UU:MM> [#kleur] - dienst toevoegen\n/addshift <naam> allday [#kleur] - hele-dag dienst toevoegen\n/updateshift <n> <naam> <UU:MM> <UU:MM> [#kleur] - dienst wijzigen\n/deleteshift <n> - dienst verwijderen\n/assign <n> <jjjj-mm-dd> - dienst toewijzen aan een datum\n/unassign <jjjj-mm-dd> - datum leegmaken\n/day <jjjj-mm-dd> - datum tonen\n/month [jjjj-mm] - maand tonen\n/sync - agenda opnieuw inladen\n/calendars - beschrijfbare agenda's tonen\n/setcalendar <id> - doelagenda kiezen\n/language en|nl - taal wisselen\n/notifications on|off [minuten] - meldingen instellen",
	NoShifts:           "📭 Geen diensten geconfigureerd. Voeg er een toe met /addshift.",
	ShiftList:          "📋 Geconfigureerde diensten:",
	ShiftAdded:         "✅ Dienst toegevoegd.",
	ShiftUpdated:       "✅ Dienst bijgewerkt.",
	ShiftDeleted:       "✅ Dienst verwijderd.",
	ShiftNotFound:      "❌ Die dienst bestaat niet.",
	ShiftAssigned:      "✅ Dienst toegewezen.",
	ShiftUnassigned:    "✅ Datum leeggemaakt.",
	NothingOnDate:      "📭 Niets toegewezen op die datum.",
	NoCalendarForShift: "⚠️ Deze dienst heeft geen doelagenda. Kies er een met /setcalendar en sla de dienst opnieuw op.",
	AccessDenied:       "🚫 Geen toegang tot de agenda.",
	SyncDone:           "🔄 Agenda synchronisatie voltooid.",
	SyncFailed:         "❌ Agenda synchronisatie mislukt: ",
	CalendarList:       "📅 Beschrijfbare agenda's:",
	CalendarSelected:   "✅ Doelagenda ingesteld.",
	LanguageSet:        "✅ Taal ingesteld op Nederlands.",
	NotificationsOn:    "🔔 Meldingen ingeschakeld.",
	NotificationsOff:   "🔕 Meldingen uitgeschakeld.",
	BadDate:            "❌ Ongeldige datum. Gebruik jjjj-mm-dd.",
	BadArguments:       "❌ Ongeldige argumenten. Zie /help.",
	UnknownCommand:     "❌ Onbekend commando. Gebruik /help voor de commando's.",
	OperationFailed:    "❌ Bewerking mislukt: ",
	MonthEmpty:         "📭 Geen diensten in deze maand.",
	MonthHeader:        "📅 Diensten in ",
}

// T resolves a message key for the given language code.
func T(language string, key Key) string {
	if language == models.LanguageDutch {
		if msg, ok := dutch[key]; ok {
			return msg
		}
	}
	if msg, ok := english[key]; ok {
		return msg
	}
	return string(key)
}
