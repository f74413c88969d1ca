package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/minhvn/taskfocus-api/internal/models"
	"github.com/minhvn/taskfocus-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type StatsServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	clock   *fakeClock
	service *StatsService
}

func (suite *StatsServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.FocusSession{},
	)
	suite.Require().NoError(err)

	// Wednesday June 18 2025; the current week started Sunday June 15.
	suite.clock = &fakeClock{now: time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)}
	suite.service = NewStatsService(repository.NewTaskRepository(suite.db), suite.clock)
}

func (suite *StatsServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *StatsServiceTestSuite) seedTask(task models.Task) {
	if task.OwnerID == 0 {
		task.OwnerID = 1
	}
	if task.Priority == "" {
		task.Priority = models.TaskPriorityMedium
	}
	suite.Require().NoError(suite.db.Create(&task).Error)
}

func (suite *StatsServiceTestSuite) TestGetStats_MonthBuckets() {
	march := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	suite.seedTask(models.Task{Title: "Done in March", Status: models.TaskStatusDone, Completed: true, DueDate: &march})
	suite.seedTask(models.Task{Title: "Done in June", Status: models.TaskStatusDone, Completed: true, DueDate: &june})
	suite.seedTask(models.Task{Title: "Also June", Status: models.TaskStatusDone, Completed: true, DueDate: &june})
	suite.seedTask(models.Task{Title: "Open in June", Status: models.TaskStatusTodo, DueDate: &june})

	stats, err := suite.service.GetStats(1, StatsViewMonth)
	suite.Require().NoError(err)

	suite.Equal(StatsViewMonth, stats.View)
	suite.Len(stats.CompletedBuckets, 12)
	suite.Equal(int64(1), stats.CompletedBuckets[2]) // March
	suite.Equal(int64(2), stats.CompletedBuckets[5]) // June
	suite.Equal(int64(4), stats.TotalTasks)
}

func (suite *StatsServiceTestSuite) TestGetStats_WeekBuckets() {
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	lastFriday := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)

	suite.seedTask(models.Task{Title: "Done Monday", Status: models.TaskStatusDone, Completed: true, DueDate: &monday})
	suite.seedTask(models.Task{Title: "Done last week", Status: models.TaskStatusDone, Completed: true, DueDate: &lastFriday})

	stats, err := suite.service.GetStats(1, StatsViewWeek)
	suite.Require().NoError(err)

	suite.Len(stats.CompletedBuckets, 7)
	suite.Equal(int64(1), stats.CompletedBuckets[1]) // Monday slot
	// A task outside the current week contributes to no weekday slot
	var total int64
	for _, n := range stats.CompletedBuckets {
		total += n
	}
	suite.Equal(int64(1), total)
}

// Status counts reflect the derived status, so an overdue Todo shows up as
// Expired even though nothing was persisted.
func (suite *StatsServiceTestSuite) TestGetStats_DerivedStatusCounts() {
	overdue := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	ahead := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	suite.seedTask(models.Task{Title: "Overdue", Status: models.TaskStatusTodo, DueDate: &overdue})
	suite.seedTask(models.Task{Title: "Upcoming", Status: models.TaskStatusTodo, DueDate: &ahead})
	suite.seedTask(models.Task{Title: "Working", Status: models.TaskStatusDoing, DueDate: &ahead})
	suite.seedTask(models.Task{Title: "Finished", Status: models.TaskStatusDone, Completed: true})

	stats, err := suite.service.GetStats(1, StatsViewMonth)
	suite.Require().NoError(err)

	suite.Equal(int64(1), stats.StatusCounts[models.TaskStatusExpired])
	suite.Equal(int64(1), stats.StatusCounts[models.TaskStatusTodo])
	suite.Equal(int64(1), stats.StatusCounts[models.TaskStatusDoing])
	suite.Equal(int64(1), stats.StatusCounts[models.TaskStatusDone])

	var stored models.Task
	suite.Require().NoError(suite.db.Where("title = ?", "Overdue").First(&stored).Error)
	suite.Equal(models.TaskStatusTodo, stored.Status)
}

func (suite *StatsServiceTestSuite) TestGetStats_FocusTotals() {
	suite.seedTask(models.Task{Title: "A", Status: models.TaskStatusDoing, FocusTimeSeconds: 1500})
	suite.seedTask(models.Task{Title: "B", Status: models.TaskStatusTodo, FocusTimeSeconds: 900})
	suite.seedTask(models.Task{Title: "Other owner", Status: models.TaskStatusTodo, FocusTimeSeconds: 777, OwnerID: 2})

	stats, err := suite.service.GetStats(1, StatsViewMonth)
	suite.Require().NoError(err)

	suite.Equal(int64(2400), stats.TotalFocusSeconds)
	suite.Equal(int64(2), stats.TotalTasks)
}

func (suite *StatsServiceTestSuite) TestGetStats_InvalidView() {
	_, err := suite.service.GetStats(1, "fortnight")
	suite.ErrorIs(err, ErrInvalidStatsView)
}

func TestStatsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatsServiceTestSuite))
}
