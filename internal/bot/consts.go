package bot

const (
	cbkLanguage    = "language"
	cbkHistoryPage = "history_page"
)

const (
	msgDefaultError              = "unknown_error"
	msgStart                     = "start"
	msgLoginRequired             = "login_required"
	msgLanguage                  = "select_language"
	msgDashboardHeader           = "dashboard_header"
	msgDashboardQuote            = "dashboard_quote"
	msgDashboardEmpty            = "dashboard_empty"
	msgPortfolioHeader           = "portfolio_header"
	msgPortfolioPosition         = "portfolio_position"
	msgPortfolioFooter           = "portfolio_footer"
	msgPortfolioEmpty            = "portfolio_empty"
	msgTradeHelp                 = "trade_help"
	msgTradePrice                = "trade_price"
	msgOrderUsage                = "order_usage"
	msgOrderFilled               = "order_filled"
	msgRejectedInvalidOrder      = "rejected_invalid_order"
	msgRejectedInsufficientFunds = "rejected_insufficient_funds"
	msgRejectedInsufficientShare = "rejected_insufficient_shares"
	msgHistoryHeader             = "history_header"
	msgHistoryOperation          = "history_operation"
	msgHistoryEmpty              = "history_empty"
	msgSynthetic                 = "synthetic_mark"
	msgNotQuoted                 = "not_quoted"
)

const (
	btnLanguage     = "button_language"
	btnDashboard    = "button_dashboard"
	btnPortfolio    = "button_portfolio"
	btnTrade        = "button_trade"
	btnHistory      = "button_history"
	btnNextPage     = "button_next_page"
	btnPreviousPage = "button_previous_page"
)

const (
	trendBullish = "🟢"
	trendBearish = "🔴"
)
