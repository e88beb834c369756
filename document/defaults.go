package document

// Default returns the template a new editing session starts from.
func Default() *Document {
	return &Document{
		Meta: Meta{
			Year:         "2025",
			Month:        "05",
			ClientName:   "Sample Project Co., Ltd.",
			IssueDate:    "2025-06-01",
			Author:       "Taro Yamada (Senior Security Consultant)",
			Organization: "KAKEHASHI ASIA inc.",
		},
		Summary: Summary{
			Score:          ScoreS,
			Uptime:         "100%",
			ThreatsBlocked: 14280,
			BackupStatus:   "Successful every day",
			Comment: "No outage or security incident affected business operations this month.\n\n" +
				"The scheduled security update of the file server completed without downtime " +
				"thanks to its redundant configuration, and data integrity remains very high.\n\n" +
				"OS versions of all managed smartphones were verified and no loss or theft was reported.",
		},
		ThreatStats: []ThreatStat{
			{Name: "Port Scan", Count: 8500, Color: "#64748b"},
			{Name: "SQL Injection", Count: 1200, Color: "#ef4444"},
			{Name: "XSS Attempt", Count: 800, Color: "#f59e0b"},
			{Name: "Malware Download", Count: 150, Color: "#8b5cf6"},
			{Name: "Brute Force", Count: 3630, Color: "#3b82f6"},
		},
		SecurityAnalysis: SecurityAnalysis{
			GlobalIPTitle: "Global IP Filtering",
			GlobalIPComment: "Unauthorized access attempts from abroad made up 92% of all traffic. " +
				"Geo-IP filtering drops traffic from unrelated countries at the network edge.",
			BotDefenseTitle: "Automated Bot Defense",
			BotDefenseComment: "Scans from known botnets (ports 22, 443) were detected and neutralised " +
				"by reputation-based blacklists before any reconnaissance completed.",
		},
		ResourceStats: ResourceStats{
			Storage: []ResourceStat{
				{Month: "Jan", Value: 42},
				{Month: "Feb", Value: 44},
				{Month: "Mar", Value: 45},
				{Month: "Apr", Value: 48},
				{Month: "May", Value: 50},
			},
			CPU: []ResourceStat{
				{Month: "Jan", Value: 30},
				{Month: "Feb", Value: 28},
				{Month: "Mar", Value: 35},
				{Month: "Apr", Value: 65},
				{Month: "May", Value: 40},
			},
		},
		Assets: []Asset{
			{ID: "NAS-01", HostName: "Re:NAS-Main", Role: "Secure NAS", OS: "Debian 12 (Hardened)", Status: StatusHealthy,
				Detail: "ZFS Pool Status: ONLINE (No Errors), scrub completed 2025/05/28"},
			{ID: "WEB-01", HostName: "Corp-HP", Role: "Corporate website", OS: "Debian / Nginx", Status: StatusHealthy,
				Detail: "WAF enabled, TLS certificate valid for 320 more days"},
			{ID: "MOB-001", HostName: "Re:Veil-User01", Role: "Secure smartphone", OS: "GrapheneOS", Status: StatusHealthy,
				Detail: "Auditor App: Verified, last sync 2 hours ago"},
			{ID: "MOB-002", HostName: "Re:Veil-User02", Role: "Secure smartphone", OS: "GrapheneOS", Status: StatusHealthy,
				Detail: "Auditor App: Verified, last sync 5 hours ago"},
		},
		Performance: Performance{
			StorageAnalysis: "Pool usage reached 50%. The five-month trend shows growth of about 2% per month; " +
				"no disk expansion is needed for the next 18 months.",
			DeviceAnalysis: "All smartphones run the latest GrapheneOS patch. Memory usage and battery wear are within normal range.",
			WebAnalysis:    "Traffic to the public web server is stable with no sign of DDoS preparation.",
			LoadAnalysis: "Load stayed low overall with a temporary 65% peak in April, caused by the quarterly full " +
				"backup overlapping the pool scrub. This is expected behaviour.",
		},
		Evidence: []EvidenceItem{
			{ID: "ev1", Title: "Immutable Backup", Category: CategoryStorage, Status: "Success", Date: "2025/06/01",
				Description: "Backup to ransomware-resistant immutable storage confirmed."},
			{ID: "ev2", Title: "EDR / Antivirus", Category: CategorySecurity, Status: "Active", Date: "2025/06/01",
				Description: "Latest signatures applied on every endpoint. No undetected threats."},
			{ID: "ev3", Title: "Quarterly Restore Test", Category: CategoryActivity, Status: "Verified", Date: "2025/05/28",
				Description: "Ten random files restored from the NAS and their hashes verified."},
		},
		Changes: []ChangeLogEntry{
			{ID: "1", Date: "05/10", Type: "Maintenance", Content: "Applied Debian security update to the NAS", Result: "Done", Owner: "Yamada"},
			{ID: "2", Date: "05/15", Type: "Config change", Content: "Provisioned one new secure smartphone", Result: "Done", Owner: "Suzuki"},
			{ID: "3", Date: "05/20", Type: "Preventive", Content: "Ran ZFS scrub and integrity check", Result: "OK", Owner: "System"},
			{ID: "4", Date: "05/25", Type: "Web update", Content: "Updated website news section (git deploy)", Result: "Done", Owner: "Sato"},
			{ID: "5", Date: "05/28", Type: "Audit", Content: "Monthly log audit and report preparation", Result: "Done", Owner: "Yamada"},
		},
		News: []NewsItem{
			{ID: "n1", Title: "Targeted attacks abusing smartphone location data", Date: "2025/12/20",
				Source:  "Global Cyber Security Watch",
				Content: "Spyware exploiting commercial OS flaws to eavesdrop on location and microphone is targeting executives.",
				Impact:  "Your hardened smartphones restrict tracking at the OS level and are not affected."},
			{ID: "n2", Title: "Ransomware campaigns against NAS devices", Date: "2025/12/15",
				Source:  "TechDefense Report",
				Content: "Unpatched NAS devices are being encrypted together with their backups.",
				Impact:  "Your NAS is hardened and receives automatic updates; the vulnerability is already fixed."},
			{ID: "n3", Title: "Shift in website defacement trends", Date: "2025/12/10",
				Source:  "WebSec Journal",
				Content: "Attackers exploit CMS plugin flaws to silently serve malware to visitors.",
				Impact:  "Your site is mostly static and uses no dynamic plugins, so the risk is very limited."},
		},
		Roadmap: Roadmap{
			NextMonthPlan: "- Validate the upcoming major GrapheneOS release.\n" +
				"- Clean up old snapshot generations on the NAS.",
			StrategicAdvice: "Smartphone rollout: the current management server can host up to 50 devices.\n\n" +
				"Zero trust: device-certificate authentication (mTLS) between phones and NAS is almost ready; " +
				"we propose implementing it in next fiscal year's budget.",
		},
		Invoice: Invoice{
			Number:         "INV-2025-0501",
			IssueDate:      "2025-06-01",
			DueDate:        "2025-06-30",
			Currency:       USD,
			TaxRatePercent: 0,
			Sender:         Party{Name: "KAKEHASHI ASIA inc.", Details: "Chiba, Japan\nContact: support@example.com"},
			Client:         Party{Name: "Client Corp (Global)", Details: "Manila, Philippines\nAttn: Finance Dept"},
			Bank: Bank{
				Name:        "Mizuho Bank, Ltd.",
				Branch:      "Marunouchi Branch",
				SWIFT:       "MHCBJPJT",
				AccountType: "Savings",
				AccountNo:   "1234567890",
				Holder:      "KAKEHASHI ASIA INC",
			},
			Notes: "Please remit payment in USD. Bank transfer fees shall be borne by the payer.",
			Items: []LineItem{
				{ID: "1", Description: "Monthly Security Consulting Fee (Basic Plan)", Quantity: 1, UnitPrice: 4500},
				{ID: "2", Description: "Re:Veil Management License (May Usage)", Quantity: 2, UnitPrice: 45},
				{ID: "3", Description: "Re:NAS Maintenance Support", Quantity: 1, UnitPrice: 250},
			},
		},
	}
}
