/*
 * @module service/app_test
 * @description 应用装配与清洗运行测试
 * @architecture 测试层
 * @stateFlow 构造App -> 执行清洗 -> 校验输出文件、运行记录、事件和指标
 * @rules 外部消息通道使用Mock，运行记录库使用内存sqlite
 * @dependencies testing, stretchr/testify
 */

package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"employee-datahub/service/config"
	"employee-datahub/service/models"
	"employee-datahub/service/run_store"
	"employee-datahub/testutil"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// AppTestSuite 应用测试套件
type AppTestSuite struct {
	suite.Suite
	ctx       context.Context
	store     *run_store.RunStore
	publisher *testutil.MockPublisher
	app       *App
	input     string
	output    string
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = run_store.NewRunStore(testutil.NewTestDB(s.T()))
	s.publisher = testutil.NewMockPublisher("mock")
	s.input = testutil.WriteFile(s.T(), "raw_data.csv", testutil.RawEmployeesCSV)
	s.output = filepath.Join(s.T().TempDir(), "cleaned_data.csv")

	cfg := config.Default()
	cfg.Cleaning.RawDataFile = s.input
	cfg.Cleaning.CleanedDataFile = s.output

	app, err := NewApp(s.ctx, cfg, WithRunStore(s.store), WithPublishers(s.publisher))
	s.Require().NoError(err)
	s.app = app
}

func (s *AppTestSuite) TestRunConfiguredCleaning() {
	var published *models.RunEvent
	s.publisher.On("Publish", mock.Anything, mock.AnythingOfType("*models.RunEvent")).
		Run(func(args mock.Arguments) { published = args.Get(1).(*models.RunEvent) }).
		Return(nil)

	report, err := s.app.RunConfiguredCleaning(s.ctx)
	s.Require().NoError(err)
	s.Equal(6, report.RowsOut)

	_, err = os.Stat(s.output)
	s.NoError(err, "清洗结果已写出")

	run, err := s.store.Get(s.ctx, report.RunID)
	s.Require().NoError(err)
	s.Equal(models.RunStatusSucceeded, run.Status)
	s.Equal(s.input, run.InputFile)
	s.Equal(1, run.SalariesImputed)

	s.Require().NotNil(published)
	s.Equal(report.RunID, published.RunID)
	s.Equal(models.RunStatusSucceeded, published.Status)

	s.Equal(1.0, promtestutil.ToFloat64(s.app.Metrics.CleaningRuns.WithLabelValues("global_drop", models.RunStatusSucceeded)))
}

func (s *AppTestSuite) TestRunCleaning_FailureRecorded() {
	s.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	missing := filepath.Join(s.T().TempDir(), "missing.csv")

	_, err := s.app.RunCleaning(s.ctx, missing, s.output, models.PolicyPerDepartmentReplace)
	s.Require().Error(err)

	_, statErr := os.Stat(s.output)
	s.True(os.IsNotExist(statErr), "失败时不写出文件")

	runs, err := s.store.List(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(runs, 1)
	s.Equal(models.RunStatusFailed, runs[0].Status)
	s.Equal(string(models.PolicyPerDepartmentReplace), runs[0].Policy)
	s.NotEmpty(runs[0].ErrorMessage)
	s.NotEmpty(runs[0].ID)
}

func (s *AppTestSuite) TestRunCleaning_FailureKeepsStartTime() {
	s.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	before := time.Now()

	_, err := s.app.RunCleaning(s.ctx, filepath.Join(s.T().TempDir(), "missing.csv"), s.output, models.PolicyGlobalDrop)
	s.Require().Error(err)

	report, err := s.app.RunConfiguredCleaning(s.ctx)
	s.Require().NoError(err)

	runs, err := s.store.List(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(runs, 2)
	s.Equal(report.RunID, runs[0].ID, "后执行的成功运行排在前面")
	failed := runs[1]
	s.Equal(models.RunStatusFailed, failed.Status)
	s.False(failed.StartedAt.IsZero())
	s.WithinDuration(before, failed.StartedAt, time.Minute)

	deleted, err := s.store.DeleteBefore(s.ctx, time.Now().AddDate(0, 0, -30))
	s.Require().NoError(err)
	s.Zero(deleted, "失败记录不应被保留期清理删除")
}

func (s *AppTestSuite) TestRunCleaning_NotifyFailureIgnored() {
	s.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := s.app.RunConfiguredCleaning(s.ctx)
	s.NoError(err, "通知失败不影响清洗结果")
}

func (s *AppTestSuite) TestLoadAnalyzer() {
	s.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	_, err := s.app.RunConfiguredCleaning(s.ctx)
	s.Require().NoError(err)

	an, err := s.app.LoadAnalyzer(s.ctx, s.output)
	s.Require().NoError(err)
	s.Equal(6, an.Len())
	s.Equal(6.0, promtestutil.ToFloat64(s.app.Metrics.LoadedEmployees))

	top, err := an.TopNHighestPaid(1)
	s.Require().NoError(err)
	s.Equal("Lily Evans", top[0].Name)
}

func (s *AppTestSuite) TestRunStore() {
	store, err := s.app.RunStore()
	s.NoError(err)
	s.Same(s.store, store)

	bare, err := NewApp(s.ctx, config.Default())
	s.Require().NoError(err)
	_, err = bare.RunStore()
	s.ErrorIs(err, ErrStoreDisabled)
	s.NoError(bare.Close())
}

func (s *AppTestSuite) TestNewApp_SqliteStore() {
	cfg := config.Default()
	cfg.RunStore = config.RunStoreConfig{Driver: "sqlite", DSN: filepath.Join(s.T().TempDir(), "runs.db")}

	app, err := NewApp(s.ctx, cfg)
	s.Require().NoError(err)
	defer app.Close()

	store, err := app.RunStore()
	s.Require().NoError(err)
	s.NoError(store.Save(s.ctx, &models.CleaningRun{InputFile: "a", OutputFile: "b", Policy: "global_drop", Status: models.RunStatusSucceeded}))
}

func (s *AppTestSuite) TearDownTest() {
	s.publisher.On("Close").Return(nil).Maybe()
	s.NoError(s.app.Close())
}
