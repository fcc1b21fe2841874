package intake

// Content holds the texts and links the bot shows. Empty fields fall back to DefaultContent.
type Content struct {
	Welcome          string `yaml:"welcome" toml:"welcome"`
	MenuPrompt       string `yaml:"menu_prompt" toml:"menu_prompt"`
	AskName          string `yaml:"ask_name" toml:"ask_name"`
	AskTasks         string `yaml:"ask_tasks" toml:"ask_tasks"`
	AskDeadline      string `yaml:"ask_deadline" toml:"ask_deadline"`
	Submitted        string `yaml:"submitted" toml:"submitted"`
	Cancelled        string `yaml:"cancelled" toml:"cancelled"`
	NothingToConfirm string `yaml:"nothing_to_confirm" toml:"nothing_to_confirm"`
	HelpPrompt       string `yaml:"help_prompt" toml:"help_prompt"`
	HelpSent         string `yaml:"help_sent" toml:"help_sent"`
	UnknownButton    string `yaml:"unknown_button" toml:"unknown_button"`
	About            string `yaml:"about" toml:"about"`
	Support          string `yaml:"support" toml:"support"`

	GitHubURL  string `yaml:"github_url" toml:"github_url"`
	ProjectURL string `yaml:"project_url" toml:"project_url"`
	SiteURL    string `yaml:"site_url" toml:"site_url"`
	BoostyURL  string `yaml:"boosty_url" toml:"boosty_url"`
}

// DefaultContent returns the built-in texts.
func DefaultContent() Content {
	return Content{
		Welcome:          "Привет! Я бот-помощник канала @javafriendch.\nВыберите действие 👇",
		MenuPrompt:       "Выберите действие 👇",
		AskName:          "Введите ваше имя:",
		AskTasks:         "Введите задачи, которые должен выполнять бот:",
		AskDeadline:      "Введите срок выполнения:",
		Submitted:        "✅ Ваша заявка отправлена! Ожидайте ответа.",
		Cancelled:        "❌ Заявка отменена.",
		NothingToConfirm: "Нет заявки для подтверждения. Начните заново через меню.",
		HelpPrompt:       "💬 Если у вас появились вопросы, напишите их мне, и я отвечу лично.",
		HelpSent:         "✅ Ваш вопрос отправлен! Я свяжусь с вами в ближайшее время.",
		UnknownButton:    "Неизвестная кнопка.",
		About: "👨‍💻 Обо мне:\nЯ — Java Backend разработчик.\n" +
			"Создаю современные бэкенд-сервисы и телеграм-ботов.\n\n📂 Мои проекты:",
		Support: "☕ Буду рад вашей поддержке!\n\n" +
			"Подписка на Boosty помогает развивать проекты и делать новых ботов.",

		GitHubURL:  "https://github.com/bledtwit",
		ProjectURL: "https://github.com/bledtwit/financebot",
		SiteURL:    "https://bledtwit.github.io/",
		BoostyURL:  "https://boosty.to/bledtwit",
	}
}

// WithDefaults fills empty fields from DefaultContent.
func (c Content) WithDefaults() Content {
	d := DefaultContent()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.Welcome, d.Welcome)
	fill(&c.MenuPrompt, d.MenuPrompt)
	fill(&c.AskName, d.AskName)
	fill(&c.AskTasks, d.AskTasks)
	fill(&c.AskDeadline, d.AskDeadline)
	fill(&c.Submitted, d.Submitted)
	fill(&c.Cancelled, d.Cancelled)
	fill(&c.NothingToConfirm, d.NothingToConfirm)
	fill(&c.HelpPrompt, d.HelpPrompt)
	fill(&c.HelpSent, d.HelpSent)
	fill(&c.UnknownButton, d.UnknownButton)
	fill(&c.About, d.About)
	fill(&c.Support, d.Support)
	fill(&c.GitHubURL, d.GitHubURL)
	fill(&c.ProjectURL, d.ProjectURL)
	fill(&c.SiteURL, d.SiteURL)
	fill(&c.BoostyURL, d.BoostyURL)
	return c
}
