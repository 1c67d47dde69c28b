package grid

import "fmt"

// Validate runs every structural check on a network snapshot: bus numbering,
// bus typing and branch numbering/terminals.
func Validate(busCount int, buses []Bus, branches []Branch) error {
	if err := CheckBuses(busCount, buses); err != nil {
		return err
	}
	if err := CheckBusTypes(buses); err != nil {
		return err
	}
	return CheckBranches(busCount, branches)
}

// CheckBuses verifies that bus numbers cover [1, busCount] exactly once.
func CheckBuses(busCount int, buses []Bus) error {
	if busCount <= 0 || len(buses) != busCount {
		return fmt.Errorf("bus count %d with %d buses: %w", busCount, len(buses), ErrBusCount)
	}

	seen := make([]bool, busCount+1)
	for _, bus := range buses {
		if bus.Number < 1 || bus.Number > busCount {
			return fmt.Errorf("%s not in [1, %d]: %w", bus, busCount, ErrBusIndex)
		}
		if seen[bus.Number] {
			return fmt.Errorf("%s: %w", bus, ErrDuplicateBus)
		}
		seen[bus.Number] = true
	}
	return nil
}

// CheckBusTypes fails on the first bus without a role.
func CheckBusTypes(buses []Bus) error {
	for _, bus := range buses {
		if bus.Role == RoleUnset {
			return fmt.Errorf("%s: %w", bus, ErrMissingBusType)
		}
	}
	return nil
}

// CheckBranches verifies that branch numbers cover [1, len(branches)] exactly
// once and that every terminal names a distinct bus in [1, busCount].
func CheckBranches(busCount int, branches []Branch) error {
	if busCount <= 0 {
		return fmt.Errorf("bus count %d: %w", busCount, ErrBusCount)
	}

	seen := make([]bool, len(branches)+1)
	for i, branch := range branches {
		if branch == nil {
			return fmt.Errorf("branch at position %d is nil: %w", i, ErrUnknownBranch)
		}

		number := branch.Number()
		if number < 1 || number > len(branches) {
			return fmt.Errorf("branch %d not in [1, %d]: %w", number, len(branches), ErrBranchIndex)
		}
		if seen[number] {
			return fmt.Errorf("branch %d: %w", number, ErrDuplicateBranch)
		}
		seen[number] = true

		terminals := branch.Terminals()
		for k, terminal := range terminals {
			if terminal < 1 || terminal > busCount {
				return fmt.Errorf("branch %d terminal %d not in [1, %d]: %w", number, terminal, busCount, ErrBusIndex)
			}
			for _, earlier := range terminals[:k] {
				if earlier == terminal {
					return fmt.Errorf("branch %d bus %d: %w", number, terminal, ErrSelfLoop)
				}
			}
		}
	}
	return nil
}
