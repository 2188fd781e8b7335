package validators

import "go.mongodb.org/mongo-driver/bson"

var OpenMatchValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"slot_token",
			"court_id",
			"sport",
			"date",
			"start_time",
			"duration_min",
			"organizer_id",
			"organizer_name",
			"capacity",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"slot_token": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"court_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"sport": bson.M{
				"bsonType": "string",
				"enum": []string{
					"padel",
					"tennis",
					"football",
					"basketball",
				},
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{4}-\\d{2}-\\d{2}$",
			},

			"start_time": bson.M{
				"bsonType": "string",
				"pattern":  "^\\d{2}:\\d{2}$",
			},

			"duration_min": bson.M{
				"bsonType": "int",
				"minimum":  30,
				"maximum":  180,
			},

			"organizer_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"organizer_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"level": bson.M{
				"bsonType": "string",
				"enum": []string{
					"beginner",
					"intermediate",
					"advanced",
				},
			},

			"capacity": bson.M{
				"bsonType": "int",
				"minimum":  2,
				"maximum":  30,
			},

			"players": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "string",
				},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"open",
					"full",
					"cancelled",
				},
			},

			"notes": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
