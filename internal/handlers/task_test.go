package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Profile{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo)
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(name string, creatorID models.UserID) *models.Project {
	project := &models.Project{
		Name:        name,
		Description: "Test project description",
		Status:      models.ProjectStatusNotStarted,
		CreatorID:   creatorID,
	}
	suite.db.Create(project)
	return project
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID models.UserID) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// createTaskVia drives task creation through the handler so the project's and
// assignee's back-references are written the same way production does.
func (suite *TaskHandlerTestSuite) createTaskVia(creatorID models.UserID, projectID models.ProjectID, assignedTo *models.UserID) models.TaskID {
	requestBody := map[string]interface{}{
		"title":       "Test Task",
		"description": "Test task description",
		"project":     projectID,
	}
	if assignedTo != nil {
		requestBody["assigned_to"] = *assignedTo
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, creatorID)
	suite.handler.CreateTask(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	task := response["task"].(map[string]interface{})
	return models.TaskID(task["id"].(float64))
}

func (suite *TaskHandlerTestSuite) reloadProject(id models.ProjectID) models.Project {
	var project models.Project
	suite.Require().NoError(suite.db.First(&project, id).Error)
	return project
}

func (suite *TaskHandlerTestSuite) reloadUser(id models.UserID) models.User {
	var user models.User
	suite.Require().NoError(suite.db.First(&user, id).Error)
	return user
}

// TestCreateTask_Success tests that creation writes both back-references
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("test@example.com")
	assignee := suite.createTestUser("assignee@example.com")
	project := suite.createTestProject("Test Project", user.ID)

	taskID := suite.createTaskVia(user.ID, project.ID, &assignee.ID)

	reloadedProject := suite.reloadProject(project.ID)
	assert.True(suite.T(), models.ContainsRef(reloadedProject.Tasks, taskID))

	reloadedAssignee := suite.reloadUser(assignee.ID)
	assert.True(suite.T(), models.ContainsRef(reloadedAssignee.Tasks, taskID))
}

// TestCreateTask_Unassigned tests creation without an assignee
func (suite *TaskHandlerTestSuite) TestCreateTask_Unassigned() {
	user := suite.createTestUser("test@example.com")
	project := suite.createTestProject("Test Project", user.ID)

	taskID := suite.createTaskVia(user.ID, project.ID, nil)

	var task models.Task
	suite.Require().NoError(suite.db.First(&task, taskID).Error)
	assert.Nil(suite.T(), task.AssignedTo)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.Status)
}

// TestCreateTask_ProjectNotFound tests that a missing project writes nothing
func (suite *TaskHandlerTestSuite) TestCreateTask_ProjectNotFound() {
	user := suite.createTestUser("test@example.com")

	requestBody := map[string]interface{}{
		"title":       "Orphan Task",
		"description": "Test task description",
		"project":     9999,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestCreateTask_AssigneeNotFound tests creation with a non-existent assignee
func (suite *TaskHandlerTestSuite) TestCreateTask_AssigneeNotFound() {
	user := suite.createTestUser("test@example.com")
	project := suite.createTestProject("Test Project", user.ID)

	requestBody := map[string]interface{}{
		"title":       "Test Task",
		"description": "Test task description",
		"project":     project.ID,
		"assigned_to": 9999,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestGetTask_Success tests successful task retrieval
func (suite *TaskHandlerTestSuite) TestGetTask_Success() {
	user := suite.createTestUser("test@example.com")
	project := suite.createTestProject("Test Project", user.ID)
	taskID := suite.createTaskVia(user.ID, project.ID, nil)

	c, w := suite.createAuthContext("GET", "/api/tasks/1", nil, user.ID)
	c.Params = gin.Params{{Key: "taskId", Value: "1"}}

	suite.handler.GetTaskByID(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	task := response["task"].(map[string]interface{})
	assert.Equal(suite.T(), float64(taskID), task["id"])
	assert.Equal(suite.T(), "Test Task", task["title"])
	assert.Equal(suite.T(), float64(project.ID), task["project"])
}

// TestGetTask_NotFound tests retrieval of a missing task
func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	user := suite.createTestUser("test@example.com")

	c, w := suite.createAuthContext("GET", "/api/tasks/999", nil, user.ID)
	c.Params = gin.Params{{Key: "taskId", Value: "999"}}

	suite.handler.GetTaskByID(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestGetTasksByProjectID tests the project task listing around a deletion
func (suite *TaskHandlerTestSuite) TestGetTasksByProjectID() {
	user := suite.createTestUser("test@example.com")
	project := suite.createTestProject("Test Project", user.ID)
	keptID := suite.createTaskVia(user.ID, project.ID, nil)
	doomedID := suite.createTaskVia(user.ID, project.ID, nil)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/2", nil, user.ID)
	c.Params = gin.Params{{Key: "taskId", Value: "2"}}
	suite.handler.DeleteTaskByID(c)
	suite.Require().Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext("GET", "/api/tasks/project/1", nil, user.ID)
	c.Params = gin.Params{{Key: "projectId", Value: "1"}}

	suite.handler.GetTasksByProjectID(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), float64(keptID), tasks[0].(map[string]interface{})["id"])

	reloadedProject := suite.reloadProject(project.ID)
	assert.True(suite.T(), models.ContainsRef(reloadedProject.Tasks, keptID))
	assert.False(suite.T(), models.ContainsRef(reloadedProject.Tasks, doomedID))
}

// TestGetTasksByUserID tests listing a user's assigned tasks
func (suite *TaskHandlerTestSuite) TestGetTasksByUserID() {
	user := suite.createTestUser("test@example.com")
	assignee := suite.createTestUser("assignee@example.com")
	project := suite.createTestProject("Test Project", user.ID)
	taskID := suite.createTaskVia(user.ID, project.ID, &assignee.ID)
	suite.createTaskVia(user.ID, project.ID, nil)

	c, w := suite.createAuthContext("GET", "/api/tasks/user/2", nil, user.ID)
	c.Params = gin.Params{{Key: "userId", Value: "2"}}

	suite.handler.GetTasksByUserID(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), float64(taskID), tasks[0].(map[string]interface{})["id"])
}

// TestUpdateTask_Reassignment tests that reassignment moves the back-reference
func (suite *TaskHandlerTestSuite) TestUpdateTask_Reassignment() {
	user := suite.createTestUser("test@example.com")
	oldAssignee := suite.createTestUser("old@example.com")
	newAssignee := suite.createTestUser("new@example.com")
	project := suite.createTestProject("Test Project", user.ID)
	taskID := suite.createTaskVia(user.ID, project.ID, &oldAssignee.ID)

	requestBody := map[string]interface{}{
		"assigned_to": newAssignee.ID,
		"status":      string(models.TaskStatusInProgress),
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, user.ID)
	c.Params = gin.Params{{Key: "taskId", Value: "1"}}

	suite.handler.UpdateTaskByID(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var task models.Task
	suite.Require().NoError(suite.db.First(&task, taskID).Error)
	suite.Require().NotNil(task.AssignedTo)
	assert.Equal(suite.T(), newAssignee.ID, *task.AssignedTo)
	assert.Equal(suite.T(), models.TaskStatusInProgress, task.Status)

	assert.False(suite.T(), models.ContainsRef(suite.reloadUser(oldAssignee.ID).Tasks, taskID))
	assert.True(suite.T(), models.ContainsRef(suite.reloadUser(newAssignee.ID).Tasks, taskID))
}

// TestUpdateTask_ClearAssignee tests dropping the assignee
func (suite *TaskHandlerTestSuite) TestUpdateTask_ClearAssignee() {
	user := suite.createTestUser("test@example.com")
	assignee := suite.createTestUser("assignee@example.com")
	project := suite.createTestProject("Test Project", user.ID)
	taskID := suite.createTaskVia(user.ID, project.ID, &assignee.ID)

	requestBody := map[string]interface{}{"clear_assignee": true}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("PATCH", "/api/tasks/1", body, user.ID)
	c.Params = gin.Params{{Key: "taskId", Value: "1"}}

	suite.handler.UpdateTaskByID(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var task models.Task
	suite.Require().NoError(suite.db.First(&task, taskID).Error)
	assert.Nil(suite.T(), task.AssignedTo)

	assert.False(suite.T(), models.ContainsRef(suite.reloadUser(assignee.ID).Tasks, taskID))
}

// TestDeleteTask_Success tests that deletion pulls both back-references
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	user := suite.createTestUser("test@example.com")
	assignee := suite.createTestUser("assignee@example.com")
	project := suite.createTestProject("Test Project", user.ID)
	taskID := suite.createTaskVia(user.ID, project.ID, &assignee.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	c.Params = gin.Params{{Key: "taskId", Value: "1"}}

	suite.handler.DeleteTaskByID(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Task deleted successfully.", response["message"])

	var deleted models.Task
	err = suite.db.First(&deleted, taskID).Error
	assert.Error(suite.T(), err) // Should return error because of soft delete

	assert.False(suite.T(), models.ContainsRef(suite.reloadProject(project.ID).Tasks, taskID))
	assert.False(suite.T(), models.ContainsRef(suite.reloadUser(assignee.ID).Tasks, taskID))
}

// TestDeleteTask_Unassigned tests deleting a task that has no assignee
func (suite *TaskHandlerTestSuite) TestDeleteTask_Unassigned() {
	user := suite.createTestUser("test@example.com")
	project := suite.createTestProject("Test Project", user.ID)
	taskID := suite.createTaskVia(user.ID, project.ID, nil)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	c.Params = gin.Params{{Key: "taskId", Value: "1"}}

	suite.handler.DeleteTaskByID(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var deleted models.Task
	err := suite.db.First(&deleted, taskID).Error
	assert.Error(suite.T(), err)
}

// TestDeleteTask_OrphanedProject tests deleting a task whose project is gone
func (suite *TaskHandlerTestSuite) TestDeleteTask_OrphanedProject() {
	user := suite.createTestUser("test@example.com")
	project := suite.createTestProject("Test Project", user.ID)
	taskID := suite.createTaskVia(user.ID, project.ID, nil)

	suite.Require().NoError(suite.db.Delete(&models.Project{}, project.ID).Error)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	c.Params = gin.Params{{Key: "taskId", Value: strconv.FormatUint(uint64(taskID), 10)}}

	suite.handler.DeleteTaskByID(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var deleted models.Task
	assert.Error(suite.T(), suite.db.First(&deleted, taskID).Error)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
