package models

// Route identifies a screen the UI can navigate to
type Route int

const (
	RouteHome Route = iota
	RouteNewTask
	RouteTaskDetails
	RouteUpdateTask
)

// String returns the route name
func (r Route) String() string {
	switch r {
	case RouteHome:
		return "home"
	case RouteNewTask:
		return "new_task"
	case RouteTaskDetails:
		return "task_details"
	case RouteUpdateTask:
		return "update_task"
	default:
		return "unknown"
	}
}
