package logattr

import "log/slog"

func Document(name string) slog.Attr {
	return slog.String("document", name)
}

func Step(name string) slog.Attr {
	return slog.String("step", name)
}

func URL(url string) slog.Attr {
	return slog.String("url", url)
}

func RunID(id string) slog.Attr {
	return slog.String("run_id", id)
}

func Action(action string) slog.Attr {
	return slog.String("action", action)
}

func Accounts(key string, accounts []string) slog.Attr {
	return slog.Any(key, accounts)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}
