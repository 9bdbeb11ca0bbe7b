package doctor

// Checker runs environment checks against a configured workspace.
type Checker struct {
	executor      CommandExecutor
	workspacePath string
	historyPath   string
}

// NewChecker creates a new Checker with the real command executor.
func NewChecker(workspacePath, historyPath string) *Checker {
	return &Checker{
		executor:      &RealExecutor{},
		workspacePath: workspacePath,
		historyPath:   historyPath,
	}
}

// NewCheckerWithExecutor creates a new Checker with a custom executor (for testing).
func NewCheckerWithExecutor(exec CommandExecutor, workspacePath, historyPath string) *Checker {
	return &Checker{
		executor:      exec,
		workspacePath: workspacePath,
		historyPath:   historyPath,
	}
}

// CheckAll runs every check and returns the results in display order.
func (c *Checker) CheckAll() []Check {
	return []Check{
		CheckWorkspace(c.executor, c.workspacePath),
		CheckGit(c.executor),
		CheckHistory(c.executor, c.historyPath),
		CheckDist(c.workspacePath),
	}
}

// GetSummary returns a summary of check results.
func (c *Checker) GetSummary(checks []Check) Summary {
	var summary Summary
	for _, check := range checks {
		summary.Total++
		switch check.Status {
		case StatusOK:
			summary.OK++
		case StatusMissing:
			summary.Missing++
		case StatusWarning:
			summary.Warnings++
		case StatusError:
			summary.Errors++
		}
	}
	return summary
}

// Healthy reports whether nothing is missing or broken.
func (s Summary) Healthy() bool {
	return s.Missing == 0 && s.Errors == 0
}
