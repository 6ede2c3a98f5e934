package mongo

import (
	"context"
	"fmt"
	"log"
	"time"

	"dam-dash/dao"
	"dam-dash/models"
	"dam-dash/models/report"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// reportProjection limits documents to the fields the dashboard displays.
var reportProjection = bson.M{
	"report_date":           1,
	"dam":                   1,
	"province":              1,
	"river":                 1,
	"full_storage_capacity": 1,
	"this_week":             1,
	"last_week":             1,
	"lat_long":              1,
}

// reportDay is a report_date stored either as a BSON date or as a
// YYYY-MM-DD string. Either way it decodes to midnight UTC of that day.
type reportDay struct {
	time.Time
}

func (d *reportDay) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.DateTime:
		d.Time = truncateToDay(raw.Time())
		return nil
	case bsontype.String:
		parsed, err := time.Parse(models.ReportDateLayout, raw.StringValue())
		if err != nil {
			return fmt.Errorf("report_date %q: %w", raw.StringValue(), err)
		}
		d.Time = parsed
		return nil
	default:
		return fmt.Errorf("report_date has unsupported BSON type %s", t)
	}
}

// reportDocument mirrors a stored report. Pointer fields distinguish a
// missing value from zero.
type reportDocument struct {
	ReportDate          reportDay `bson:"report_date"`
	Dam                 string    `bson:"dam"`
	Province            string    `bson:"province"`
	River               string    `bson:"river"`
	FullStorageCapacity *float64  `bson:"full_storage_capacity"`
	ThisWeek            *float64  `bson:"this_week"`
	LastWeek            *float64  `bson:"last_week"`
	LatLong             []float64 `bson:"lat_long"`
}

// MongoReportDAO reads dam reports from a MongoDB collection.
type MongoReportDAO struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoReportDAO binds the DAO to database/collection on a connected client.
func NewMongoReportDAO(client *mongo.Client, database, collection string) *MongoReportDAO {
	return &MongoReportDAO{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

// FindReports returns every valid report matching the query.
func (d *MongoReportDAO) FindReports(ctx context.Context, q dao.ReportQuery) ([]report.DamReport, error) {
	cursor, err := d.collection.Find(ctx, buildReportFilter(q), options.Find().SetProjection(reportProjection))
	if err != nil {
		return nil, fmt.Errorf("[MongoReportDAO] failed to find reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []report.DamReport
	for cursor.Next(ctx) {
		var doc reportDocument
		if err := cursor.Decode(&doc); err != nil {
			log.Printf("[MongoReportDAO] Skipping undecodable report %v: %v", cursor.Current.Lookup("_id"), err)
			continue
		}
		r, err := doc.toDamReport()
		if err != nil {
			log.Printf("[MongoReportDAO] Skipping invalid report: %v", err)
			continue
		}
		reports = append(reports, r)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("[MongoReportDAO] cursor error: %w", err)
	}
	return reports, nil
}

func (d *MongoReportDAO) DistinctReportDates(ctx context.Context) ([]time.Time, error) {
	values, err := d.collection.Distinct(ctx, "report_date", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("[MongoReportDAO] failed to list report dates: %w", err)
	}
	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		t, ok := toTime(v)
		if !ok {
			log.Printf("[MongoReportDAO] Skipping report_date of unexpected type %T", v)
			continue
		}
		dates = append(dates, t)
	}
	return dates, nil
}

func (d *MongoReportDAO) DistinctProvinces(ctx context.Context) ([]string, error) {
	values, err := d.collection.Distinct(ctx, "province", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("[MongoReportDAO] failed to list provinces: %w", err)
	}
	provinces := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			provinces = append(provinces, s)
		}
	}
	return provinces, nil
}

// LatestReportDate is the newest day among the distinct report dates, so it
// agrees with the date options whatever encoding the documents use.
func (d *MongoReportDAO) LatestReportDate(ctx context.Context) (*time.Time, error) {
	dates, err := d.DistinctReportDates(ctx)
	if err != nil {
		return nil, err
	}
	var latest *time.Time
	for i := range dates {
		if latest == nil || dates[i].After(*latest) {
			latest = &dates[i]
		}
	}
	return latest, nil
}

func (d *MongoReportDAO) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Nearest())
}

func buildReportFilter(q dao.ReportQuery) bson.M {
	filter := bson.M{}
	if q.ReportDate != nil {
		day := truncateToDay(*q.ReportDate)
		filter["$or"] = bson.A{
			bson.M{"report_date": bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}},
			bson.M{"report_date": day.Format(models.ReportDateLayout)},
		}
	}
	if q.Province != "" && q.Province != models.All {
		filter["province"] = q.Province
	}
	return filter
}

func (doc reportDocument) toDamReport() (report.DamReport, error) {
	if doc.ThisWeek == nil {
		return report.DamReport{}, fmt.Errorf("report for dam %q has no this_week", doc.Dam)
	}
	if doc.FullStorageCapacity == nil {
		return report.DamReport{}, fmt.Errorf("report for dam %q has no full_storage_capacity", doc.Dam)
	}
	if len(doc.LatLong) != 2 {
		return report.DamReport{}, fmt.Errorf("report for dam %q has malformed lat_long %v", doc.Dam, doc.LatLong)
	}
	r := report.DamReport{
		ReportDate:          doc.ReportDate.Time,
		Dam:                 doc.Dam,
		Province:            doc.Province,
		River:               doc.River,
		FullStorageCapacity: *doc.FullStorageCapacity,
		ThisWeek:            *doc.ThisWeek,
		LastWeek:            doc.LastWeek,
		LatLong:             report.LatLong{doc.LatLong[0], doc.LatLong[1]},
	}
	if err := r.Validate(); err != nil {
		return report.DamReport{}, err
	}
	return r, nil
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case primitive.DateTime:
		return truncateToDay(t.Time()), true
	case time.Time:
		return truncateToDay(t), true
	case string:
		parsed, err := time.Parse(models.ReportDateLayout, t)
		return parsed, err == nil
	default:
		return time.Time{}, false
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, day := t.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
