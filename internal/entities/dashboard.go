// Package entities contains core business entities.
package entities

// Dashboard aggregates project and roster figures for the landing page.
type Dashboard struct {
	TotalProjects        int
	ActiveProjects       int
	CompletedProjects    int
	CompletionPercentage int
	TotalTeamMembers     int
	ActiveTeamMembers    int
	RecentProjects       []Project
}

// MemberWorkload counts the tasks whose team snapshot includes a member.
type MemberWorkload struct {
	Member          TeamMember
	TasksCount      int
	TodoTasks       int
	InProgressTasks int
	DoneTasks       int
	// PrimaryTask is the title of the first assigned task, or "None".
	PrimaryTask string
}
